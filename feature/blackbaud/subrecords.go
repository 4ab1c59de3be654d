package blackbaud

import (
	"destination-sync/core/reconcile"
	"destination-sync/core/utils"
)

// subRecordKind describes one constituent sub-record type.
type subRecordKind struct {
	// label names the type in fault messages.
	label string
	// list is the path segment under /constituents/{id}.
	list string
	// resource is the create/patch collection.
	resource string
	// match is the field set identifying the same record.
	match []reconcile.FieldSpec
	// primary is the primary flag's wire name.
	primary string
	// optOut is the do-not-contact flag's wire name, if the type has one.
	optOut string
}

var (
	addressKind = subRecordKind{
		label:    "address",
		list:     "addresses",
		resource: "addresses",
		match: []reconcile.FieldSpec{
			{Name: "address_lines"},
			{Name: "city"},
			{Name: "postal_code"},
			{Name: "state"},
		},
		primary: "preferred",
		optOut:  "do_not_mail",
	}
	emailKind = subRecordKind{
		label:    "email",
		list:     "emailaddresses",
		resource: "emailaddresses",
		match:    []reconcile.FieldSpec{{Name: "address"}},
		primary:  "primary",
		optOut:   "do_not_email",
	}
	onlinePresenceKind = subRecordKind{
		label:    "online presence",
		list:     "onlinepresences",
		resource: "onlinepresences",
		match:    []reconcile.FieldSpec{{Name: "address"}},
		primary:  "primary",
	}
	phoneKind = subRecordKind{
		label:    "phone",
		list:     "phones",
		resource: "phones",
		match:    []reconcile.FieldSpec{{Name: "number", Numeric: true}},
		primary:  "primary",
		optOut:   "do_not_call",
	}
)

func setString(f reconcile.Fields, key, v string) {
	if v != "" {
		f[key] = v
	}
}

func setBool(f reconcile.Fields, key string, v *bool) {
	if v != nil {
		f[key] = *v
	}
}

func addressFields(a *Address) reconcile.Fields {
	f := reconcile.Fields{}
	if a == nil {
		return f
	}
	setString(f, "address_lines", a.AddressLines)
	setString(f, "city", a.City)
	setString(f, "country", a.Country)
	setString(f, "postal_code", a.PostalCode)
	setString(f, "state", a.State)
	setString(f, "type", a.Type)
	setBool(f, "do_not_mail", a.DoNotMail)
	setBool(f, "preferred", a.Primary)
	return f
}

func emailFields(e *Email) reconcile.Fields {
	f := reconcile.Fields{}
	if e == nil {
		return f
	}
	setString(f, "address", e.Address)
	setString(f, "type", e.Type)
	setBool(f, "do_not_email", e.DoNotEmail)
	setBool(f, "primary", e.Primary)
	return f
}

func phoneFields(p *Phone) reconcile.Fields {
	f := reconcile.Fields{}
	if p == nil {
		return f
	}
	setString(f, "number", p.Number)
	setString(f, "type", p.Type)
	setBool(f, "do_not_call", p.DoNotCall)
	setBool(f, "primary", p.Primary)
	return f
}

func onlinePresenceFields(o *OnlinePresence) reconcile.Fields {
	f := reconcile.Fields{}
	if o == nil {
		return f
	}
	setString(f, "address", o.Address)
	setString(f, "type", o.Type)
	setBool(f, "primary", o.Primary)
	return f
}

// flag returns a boolean field and whether it was present.
func flag(f reconcile.Fields, key string) (bool, bool) {
	switch v := f[key].(type) {
	case bool:
		return v, true
	case *bool:
		if v != nil {
			return *v, true
		}
	}
	return false, false
}

func nonEmpty(f reconcile.Fields) reconcile.Fields {
	if len(f) == 0 {
		return nil
	}
	return f
}

// createBody returns the body for a new sub-record. The record becomes primary
// when it is the constituent's first of its type, unless the caller opted out.
func (k subRecordKind) createBody(constituentID string, desired reconcile.Fields, existing int) reconcile.Fields {
	body := make(reconcile.Fields, len(desired)+2)
	for key, v := range desired {
		body[key] = v
	}
	if existing == 0 {
		if primary, set := flag(desired, k.primary); !set || primary {
			body[k.primary] = true
		}
	}
	body["constituent_id"] = constituentID
	return body
}

// patchBody returns the changes needed to bring a matched record in line with
// desired, or nil when the record is already up to date. Any patch also
// reactivates the record.
func (k subRecordKind) patchBody(current, desired reconcile.Fields) reconcile.Fields {
	patch := reconcile.Fields{}

	if k.optOut != "" {
		if want, set := flag(desired, k.optOut); set {
			if have, _ := flag(current, k.optOut); have != want {
				patch[k.optOut] = want
			}
		}
	}
	if want, _ := flag(desired, k.primary); want {
		if have, _ := flag(current, k.primary); !have {
			patch[k.primary] = true
		}
	}
	if want := utils.ToString(desired["type"]); want != "" && want != utils.ToString(current["type"]) {
		patch["type"] = want
	}

	inactive, _ := flag(current, "inactive")
	if len(patch) == 0 && !inactive {
		return nil
	}
	patch["inactive"] = false
	return patch
}
