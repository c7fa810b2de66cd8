package coerce_test

import (
	"encoding/json"
	"testing"
	"time"

	"flowbit/internal/model"
	"flowbit/pkg/coerce"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimal(t *testing.T) {
	cases := []struct {
		name string
		raw  any
		want string
	}{
		{"float", 123.45, "123.45"},
		{"int", 500, "500"},
		{"numeric string", "1250.50", "1250.5"},
		{"padded string", "  42 ", "42"},
		{"negative string", "-3.2", "-3.2"},
		{"json number", json.Number("99.99"), "99.99"},
		{"empty string", "", "0"},
		{"garbage", "twelve", "0"},
		{"nil", nil, "0"},
		{"bool", true, "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			want := decimal.RequireFromString(tc.want)
			assert.True(t, coerce.Decimal(tc.raw).Equal(want), "got %s", coerce.Decimal(tc.raw))
		})
	}
}

func TestInt(t *testing.T) {
	assert.Equal(t, 3, coerce.Int(3.0, 1))
	assert.Equal(t, 3, coerce.Int("3", 1))
	assert.Equal(t, 3, coerce.Int("3.7", 1), "fractional input truncates")
	assert.Equal(t, 1, coerce.Int(nil, 1))
	assert.Equal(t, 1, coerce.Int("", 1))
	assert.Equal(t, 1, coerce.Int("many", 1))
	assert.Equal(t, 5, coerce.Int([]any{}, 5))
}

func TestTime(t *testing.T) {
	fallback := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	got := coerce.Time("2026-01-10", fallback)
	assert.Equal(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), got)

	got = coerce.Time("2026-01-10T08:30:00Z", fallback)
	assert.Equal(t, time.Date(2026, 1, 10, 8, 30, 0, 0, time.UTC), got)

	assert.Equal(t, fallback, coerce.Time(nil, fallback))
	assert.Equal(t, fallback, coerce.Time("next tuesday", fallback))

	// numeric timestamps arrive as Unix milliseconds
	got = coerce.Time(float64(1767225600000), fallback)
	assert.Equal(t, 2026, got.Year())
}

func TestTimePtr(t *testing.T) {
	got := coerce.TimePtr("2026-02-10")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), *got)

	assert.Nil(t, coerce.TimePtr(nil))
	assert.Nil(t, coerce.TimePtr(""))
	assert.Nil(t, coerce.TimePtr("soon"))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, model.StatusPaid, coerce.Status("paid"))
	assert.Equal(t, model.StatusPartiallyPaid, coerce.Status("Partially_Paid"))
	assert.Equal(t, model.StatusOverdue, coerce.Status("OVERDUE"))
	assert.Equal(t, model.StatusPending, coerce.Status("shipped"))
	assert.Equal(t, model.StatusPending, coerce.Status(nil))
	assert.Equal(t, model.StatusPending, coerce.Status(42))
}

func TestString(t *testing.T) {
	assert.Equal(t, "abc", coerce.String("  abc "))
	assert.Equal(t, "", coerce.String(nil))
	assert.Equal(t, "", coerce.String(12))
}
