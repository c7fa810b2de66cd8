package ingest

// Record is one raw invoice-shaped object from an external batch. Field
// names vary between sources, so every logical field is looked up through
// an ordered candidate list and the first present key wins.
type Record map[string]any

// First returns the value of the first candidate key present in the record.
// A key holding an explicit null counts as absent.
func (r Record) First(keys ...string) any {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// Child returns the first present candidate as a nested record, or nil when
// the field is absent or not an object.
func (r Record) Child(keys ...string) Record {
	v := r.First(keys...)
	if v == nil {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return Record(m)
}

// List returns the first present candidate as a slice of records, skipping
// elements that are not objects. An absent field yields an empty list.
func (r Record) List(keys ...string) []Record {
	v := r.First(keys...)
	if v == nil {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Record, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Record(m))
		}
	}
	return out
}
