package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CanonicalJSON encodes v with every mapping's keys sorted
// lexicographically at every nesting level, so identical field content
// always yields byte-identical output. Replicas executing the same
// operation independently must agree on the exact stored bytes, which
// makes this a correctness requirement rather than a formatting choice.
//
// The value is routed through a generic JSON value before the final
// encode: encoding/json emits Go maps in sorted key order, and
// json.Number preserves integer literals exactly.
func CanonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("decode for canonical form: %w", err)
	}

	canonical, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("canonical marshal: %w", err)
	}
	return canonical, nil
}

// Bytes returns the record's canonical ledger encoding.
func (r *Record) Bytes() ([]byte, error) {
	return CanonicalJSON(r)
}

// ParseRecord decodes a ledger value back into a record.
func ParseRecord(data []byte) (*Record, error) {
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}
	return &record, nil
}
