package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	dErrors "cyberins/pkg/domain-errors"
)

// ControlValue is a tagged union: either an integer threshold or a
// nested mapping of named sub-controls. Nested != nil selects the
// mapping arm.
type ControlValue struct {
	Num    int64
	Nested ControlMap
}

// ControlMap maps a control name to its required (obligation) or
// attested (control) value.
type ControlMap map[string]ControlValue

// IntControl builds a scalar control value.
func IntControl(n int64) ControlValue {
	return ControlValue{Num: n}
}

// NestedControl builds a mapping control value.
func NestedControl(m ControlMap) ControlValue {
	return ControlValue{Nested: m}
}

// Equal is the structural comparison used by obligation checking:
// scalars compare by value, mappings compare recursively with
// order-independent key sets, and mixed shapes never match.
func (v ControlValue) Equal(other ControlValue) bool {
	if (v.Nested == nil) != (other.Nested == nil) {
		return false
	}
	if v.Nested == nil {
		return v.Num == other.Num
	}
	if len(v.Nested) != len(other.Nested) {
		return false
	}
	for name, sub := range v.Nested {
		otherSub, ok := other.Nested[name]
		if !ok || !sub.Equal(otherSub) {
			return false
		}
	}
	return true
}

func (v ControlValue) MarshalJSON() ([]byte, error) {
	if v.Nested != nil {
		return json.Marshal(v.Nested)
	}
	return json.Marshal(v.Num)
}

func (v *ControlValue) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		var nested ControlMap
		if err := json.Unmarshal(data, &nested); err != nil {
			return err
		}
		v.Nested = nested
		v.Num = 0
		return nil
	}
	num, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return fmt.Errorf("control value must be an integer or a mapping: %w", err)
	}
	v.Num = num
	v.Nested = nil
	return nil
}

// ParseControlSpec decodes the compound argument encoding used by the
// create operation: a hyphen-separated pair of comma-separated lists,
// names first, parallel integer values second
// ("penetrationtests,backup-9,9"). Mismatched list lengths or
// non-integer values are validation errors and nothing is persisted.
func ParseControlSpec(spec string) (ControlMap, error) {
	parts := strings.SplitN(spec, "-", 2)
	if len(parts) != 2 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "control spec must be names and values joined by '-'")
	}

	names := strings.Split(parts[0], ",")
	values := strings.Split(parts[1], ",")
	if len(names) != len(values) {
		return nil, dErrors.Newf(dErrors.CodeBadRequest, "control spec has %d names but %d values", len(names), len(values))
	}

	out := make(ControlMap, len(names))
	for i, name := range names {
		num, err := strconv.ParseInt(values[i], 10, 64)
		if err != nil {
			return nil, dErrors.Newf(dErrors.CodeBadRequest, "control %q has non-integer value %q", name, values[i])
		}
		out[name] = IntControl(num)
	}
	return out, nil
}
