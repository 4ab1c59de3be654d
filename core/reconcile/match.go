package reconcile

import (
	"strings"

	"destination-sync/core/fault"
	"destination-sync/core/utils"
)

// Fields is a flat view of a record's comparable values.
type Fields map[string]any

// FieldSpec names a match field.
type FieldSpec struct {
	// Name is the field key in Fields.
	Name string
	// Numeric compares digits only, so punctuation differences are ignored.
	Numeric bool
}

// FindMatch returns the index of the first record in existing whose match
// fields all equal desired's, or -1 when none does.
//
// Comparison is case-insensitive; absent values compare as the empty string.
// When several records match, the first in list order wins. No other
// tie-break is applied.
func FindMatch(existing []Fields, desired Fields, specs []FieldSpec) (int, error) {
	if len(specs) == 0 {
		return -1, fault.Validation(fault.CodeInvalidMatchRule, "match configuration requires at least one field")
	}
	for _, spec := range specs {
		if spec.Name == "" {
			return -1, fault.Validation(fault.CodeInvalidMatchRule, "match configuration contains an empty field name")
		}
	}

	want := make([]string, len(specs))
	for i, spec := range specs {
		want[i] = normalize(desired[spec.Name], spec.Numeric)
	}

	for idx, record := range existing {
		matched := true
		for i, spec := range specs {
			if normalize(record[spec.Name], spec.Numeric) != want[i] {
				matched = false
				break
			}
		}
		if matched {
			return idx, nil
		}
	}
	return -1, nil
}

func normalize(v any, numeric bool) string {
	s := strings.ToLower(utils.ToString(v))
	if numeric {
		return utils.DigitsOnly(s)
	}
	return s
}
