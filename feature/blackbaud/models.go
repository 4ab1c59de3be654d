package blackbaud

import (
	"strings"
	"time"

	"destination-sync/core/fault"
	"destination-sync/core/reconcile"
)

// Address is a constituent address.
type Address struct {
	AddressLines string `json:"address_lines,omitempty"`
	City         string `json:"city,omitempty"`
	Country      string `json:"country,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	State        string `json:"state,omitempty"`
	Type         string `json:"type,omitempty"`
	DoNotMail    *bool  `json:"do_not_mail,omitempty"`
	Primary      *bool  `json:"primary,omitempty"`
}

// Email is a constituent email address.
type Email struct {
	Address    string `json:"address,omitempty"`
	Type       string `json:"type,omitempty"`
	DoNotEmail *bool  `json:"do_not_email,omitempty"`
	Primary    *bool  `json:"primary,omitempty"`
}

// Phone is a constituent phone number.
type Phone struct {
	Number    string `json:"number,omitempty"`
	Type      string `json:"type,omitempty"`
	DoNotCall *bool  `json:"do_not_call,omitempty"`
	Primary   *bool  `json:"primary,omitempty"`
}

// OnlinePresence is a constituent web address or social profile.
type OnlinePresence struct {
	Address string `json:"address,omitempty"`
	Type    string `json:"type,omitempty"`
	Primary *bool  `json:"primary,omitempty"`
}

// ConstituentPayload is a fully mapped individual constituent.
type ConstituentPayload struct {
	// ConstituentID skips the search when set.
	ConstituentID string `json:"constituent_id,omitempty"`
	// LookupID is the organization-defined identifier, searched first.
	LookupID string `json:"lookup_id,omitempty"`

	First            string `json:"first,omitempty"`
	Last             string `json:"last,omitempty"`
	PreferredName    string `json:"preferred_name,omitempty"`
	FormerName       string `json:"former_name,omitempty"`
	Title            string `json:"title,omitempty"`
	Title2           string `json:"title_2,omitempty"`
	Suffix           string `json:"suffix,omitempty"`
	Suffix2          string `json:"suffix_2,omitempty"`
	Gender           string `json:"gender,omitempty"`
	Birthdate        string `json:"birthdate,omitempty"`
	Birthplace       string `json:"birthplace,omitempty"`
	Ethnicity        string `json:"ethnicity,omitempty"`
	Income           string `json:"income,omitempty"`
	Industry         string `json:"industry,omitempty"`
	MaritalStatus    string `json:"marital_status,omitempty"`
	Religion         string `json:"religion,omitempty"`
	GivesAnonymously *bool  `json:"gives_anonymously,omitempty"`

	Address        *Address        `json:"address,omitempty"`
	Email          *Email          `json:"email,omitempty"`
	Phone          *Phone          `json:"phone,omitempty"`
	OnlinePresence *OnlinePresence `json:"online_presence,omitempty"`
}

// IsEmpty reports whether the payload carries nothing but a constituent id.
func (p *ConstituentPayload) IsEmpty() bool {
	if p == nil {
		return true
	}
	fields, err := p.constituentFields()
	if err != nil || fields.hasFields() {
		return false
	}
	return len(addressFields(p.Address)) == 0 && len(emailFields(p.Email)) == 0 &&
		len(phoneFields(p.Phone)) == 0 && len(onlinePresenceFields(p.OnlinePresence)) == 0
}

// fuzzyDate is the SKY API partial date.
type fuzzyDate struct {
	D int `json:"d,omitempty"`
	M int `json:"m,omitempty"`
	Y int `json:"y,omitempty"`
}

// fuzzyLayouts are tried in order. parts is how many of year, month and day
// the layout carries.
var fuzzyLayouts = []struct {
	layout string
	parts  int
}{
	{time.RFC3339Nano, 3},
	{"2006-01-02T15:04:05", 3},
	{"2006-01-02", 3},
	{"2006-01", 2},
	{"2006", 1},
}

// parseFuzzyDate reads a full or partial ISO-8601 date. Parts missing from
// the input stay zero and are omitted on the wire.
func parseFuzzyDate(field, s string) (*fuzzyDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, l := range fuzzyLayouts {
		t, err := time.Parse(l.layout, s)
		if err != nil {
			continue
		}
		d := &fuzzyDate{Y: t.Year()}
		if l.parts >= 2 {
			d.M = int(t.Month())
		}
		if l.parts == 3 {
			d.D = t.Day()
		}
		return d, nil
	}
	return nil, fault.Validationf(fault.CodeTypeMismatch, "Invalid %s value: %q is not an ISO-8601 date", field, s)
}

// constituentFields are the top-level constituent fields sent on create and patch.
type constituentFields struct {
	LookupID         string     `json:"lookup_id,omitempty"`
	First            string     `json:"first,omitempty"`
	Last             string     `json:"last,omitempty"`
	PreferredName    string     `json:"preferred_name,omitempty"`
	FormerName       string     `json:"former_name,omitempty"`
	Title            string     `json:"title,omitempty"`
	Title2           string     `json:"title_2,omitempty"`
	Suffix           string     `json:"suffix,omitempty"`
	Suffix2          string     `json:"suffix_2,omitempty"`
	Gender           string     `json:"gender,omitempty"`
	Birthdate        *fuzzyDate `json:"birthdate,omitempty"`
	Birthplace       string     `json:"birthplace,omitempty"`
	Ethnicity        string     `json:"ethnicity,omitempty"`
	Income           string     `json:"income,omitempty"`
	Industry         string     `json:"industry,omitempty"`
	MaritalStatus    string     `json:"marital_status,omitempty"`
	Religion         string     `json:"religion,omitempty"`
	GivesAnonymously *bool      `json:"gives_anonymously,omitempty"`
}

// hasFields reports whether any field is set.
func (f constituentFields) hasFields() bool {
	return f != constituentFields{}
}

// hasUpdates reports whether any field other than the lookup id is set.
// The lookup id is how an existing constituent was found, so on its own it
// never warrants a PATCH.
func (f constituentFields) hasUpdates() bool {
	f.LookupID = ""
	return f.hasFields()
}

// createConstituentBody embeds the supplied sub-records in a new constituent.
type createConstituentBody struct {
	constituentFields
	Type           string           `json:"type"`
	Address        reconcile.Fields `json:"address,omitempty"`
	Email          reconcile.Fields `json:"email,omitempty"`
	OnlinePresence reconcile.Fields `json:"online_presence,omitempty"`
	Phone          reconcile.Fields `json:"phone,omitempty"`
}

// constituentFields returns the top-level constituent fields of p.
func (p *ConstituentPayload) constituentFields() (constituentFields, error) {
	birthdate, err := parseFuzzyDate("birthdate", p.Birthdate)
	if err != nil {
		return constituentFields{}, err
	}
	return constituentFields{
		LookupID:         p.LookupID,
		First:            p.First,
		Last:             p.Last,
		PreferredName:    p.PreferredName,
		FormerName:       p.FormerName,
		Title:            p.Title,
		Title2:           p.Title2,
		Suffix:           p.Suffix,
		Suffix2:          p.Suffix2,
		Gender:           p.Gender,
		Birthdate:        birthdate,
		Birthplace:       p.Birthplace,
		Ethnicity:        p.Ethnicity,
		Income:           p.Income,
		Industry:         p.Industry,
		MaritalStatus:    p.MaritalStatus,
		Religion:         p.Religion,
		GivesAnonymously: p.GivesAnonymously,
	}, nil
}

// RecordResult is the outcome of a constituent reconciliation.
type RecordResult struct {
	// ID is the constituent id.
	ID string `json:"id"`
	// Created is true when a new constituent was created.
	Created bool `json:"created"`
}

type searchResponse struct {
	Count int `json:"count"`
	Value []struct {
		ID string `json:"id"`
	} `json:"value"`
}

type listResponse struct {
	Count int                `json:"count"`
	Value []reconcile.Fields `json:"value"`
}

type createdResponse struct {
	ID string `json:"id"`
}
