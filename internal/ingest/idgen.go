package ingest

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NumberGenerator supplies invoice numbers for records that carry none.
// Generated numbers are placeholders guaranteed not to collide within a
// run, not domain-meaningful sequences.
type NumberGenerator interface {
	Next() string
}

type clockNumberGenerator struct{}

// NewNumberGenerator returns the default generator, combining wall-clock
// time with a random suffix.
func NewNumberGenerator() NumberGenerator {
	return clockNumberGenerator{}
}

func (clockNumberGenerator) Next() string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("INV-%d-%s", time.Now().UnixMilli(), suffix)
}
