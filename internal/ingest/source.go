package ingest

import (
	"encoding/json"
	"fmt"
	"io"
)

// DecodeBatch reads a raw batch from r. Two envelopes are recognized: a
// top-level JSON array of records, or an object whose "invoices" field
// holds that array. No other envelope fields are interpreted.
func DecodeBatch(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch: %w", err)
	}
	return ParseBatch(data)
}

// ParseBatch decodes an in-memory batch payload, see DecodeBatch.
func ParseBatch(data []byte) ([]Record, error) {
	var list []Record
	if err := json.Unmarshal(data, &list); err == nil {
		// A JSON null also unmarshals cleanly into a nil slice; that is a
		// missing batch, not an empty one.
		if list == nil {
			return nil, fmt.Errorf("batch is neither a record array nor an invoices envelope")
		}
		return list, nil
	}

	var envelope struct {
		Invoices []Record `json:"invoices"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("batch is neither a record array nor an invoices envelope: %w", err)
	}
	if envelope.Invoices == nil {
		return nil, fmt.Errorf("batch envelope has no invoices field")
	}
	return envelope.Invoices, nil
}
