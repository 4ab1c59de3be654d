package reconcile

import (
	"sort"

	"destination-sync/core/fault"
)

// Diff compares a desired schema to a known one.
//
// A nil known schema yields NoMatch with every desired property missing.
// An irreconcilable type conflict returns a validation fault together with a
// diff whose Match is Mismatch. Diff has no side effects and is deterministic.
func Diff(desired Schema, known *Schema) (SchemaDiff, error) {
	if known == nil {
		return SchemaDiff{
			Match:             NoMatch,
			MissingProperties: desired.Clone().Properties,
		}, nil
	}

	diff := SchemaDiff{MissingProperties: map[string]PropertyDescriptor{}}

	// Iterate in name order so the first reported conflict is stable.
	names := make([]string, 0, len(desired.Properties))
	for name := range desired.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		want := desired.Properties[name]
		have, ok := known.Properties[name]
		if !ok {
			diff.MissingProperties[name] = want
			continue
		}

		stringify, err := compatible(desired.Name, name, want, have)
		if err != nil {
			return SchemaDiff{Match: Mismatch, MissingProperties: map[string]PropertyDescriptor{}}, err
		}
		if stringify {
			diff.StringifiedProperties = append(diff.StringifiedProperties, name)
		}
	}

	if len(diff.MissingProperties) == 0 {
		diff.Match = FullMatch
	} else {
		diff.Match = PropertiesMissing
	}
	return diff, nil
}

// compatible checks a desired descriptor against a known one. It reports
// whether a number value has to be sent as a string.
func compatible(schemaName, name string, want, have PropertyDescriptor) (bool, error) {
	switch {
	case have.Type == TypeNumber && want.Type != TypeNumber:
		return false, typeMismatch(schemaName, name, want, have)
	case want.Type == TypeNumber && have.Type == TypeNumber:
		return false, nil
	case want.Type == TypeNumber && have.Type == TypeObject:
		return true, nil
	case want.Type == TypeNumber && have.Type == TypeString && !have.IsTemporal():
		return true, nil
	case want.Type == TypeNumber:
		return false, typeMismatch(schemaName, name, want, have)
	}
	return false, nil
}

func typeMismatch(schemaName, name string, want, have PropertyDescriptor) error {
	return fault.Validationf(fault.CodeTypeMismatch,
		"property %s in event %s: expected type %s, remote schema declares %s",
		name, schemaName, describe(want), describe(have))
}

func describe(d PropertyDescriptor) string {
	if d.Type == TypeString && d.StringFormat != "" && d.StringFormat != FormatString {
		return string(d.StringFormat)
	}
	return string(d.Type)
}
