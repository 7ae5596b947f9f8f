// Package forms builds editable form models for console entities, either from
// a static per-entity configuration, an explicit field list, or by inferring
// field types from the shape of raw data.
package forms

import (
	"fmt"
	"strings"
	"unicode"
)

type FieldType int

const (
	Text FieldType = iota
	Email
	Password
	Date
	Time
	Tel
	Select
	Number
)

var fieldTypeNames = [...]string{"text", "email", "password", "date", "time", "tel", "select", "number"}

func (t FieldType) String() string {
	if int(t) < 0 || int(t) >= len(fieldTypeNames) {
		return fmt.Sprintf("FieldType(%d)", int(t))
	}
	return fieldTypeNames[t]
}

func (t FieldType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *FieldType) UnmarshalText(b []byte) error {
	for i, n := range fieldTypeNames {
		if n == string(b) {
			*t = FieldType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown field type %q", b)
}

type Option struct {
	Value any    `json:"value"`
	Label string `json:"label"`
}

// Field is one control of a built form. Validators holds go-playground
// validator rules, one per entry.
type Field struct {
	Key        string    `json:"key"`
	Label      string    `json:"label"`
	Type       FieldType `json:"type"`
	Value      any       `json:"value"`
	Validators []string  `json:"validators,omitempty"`
	Options    []Option  `json:"options,omitempty"`
	Disabled   bool      `json:"disabled,omitempty"`
}

// Required reports whether the field carries the required rule.
func (f Field) Required() bool {
	for _, v := range f.Validators {
		if v == "required" {
			return true
		}
	}
	return false
}

var (
	GenderOptions = []Option{{"Male", "Male"}, {"Female", "Female"}, {"Other", "Other"}}
	StatusOptions = []Option{{"Pending", "Pending"}, {"Confirmed", "Confirmed"}, {"Cancelled", "Cancelled"}, {"Completed", "Completed"}}
)

// excludedKeys never become inferred fields.
var excludedKeys = map[string]struct{}{
	"id": {}, "password": {}, "passwordHash": {}, "clinic": {}, "fields": {},
	"title": {}, "entityType": {}, "data": {}, "patient": {}, "user": {},
}

type inferenceRule struct {
	patterns []string
	typ      FieldType
	options  []Option
}

// inferenceRules are tried in order against the lower-cased key; the first
// substring hit wins.
var inferenceRules = []inferenceRule{
	{patterns: []string{"email"}, typ: Email},
	{patterns: []string{"password"}, typ: Password},
	{patterns: []string{"date", "dob", "birth"}, typ: Date},
	{patterns: []string{"time"}, typ: Time},
	{patterns: []string{"phone"}, typ: Tel},
	{patterns: []string{"gender"}, typ: Select, options: GenderOptions},
	{patterns: []string{"status"}, typ: Select, options: StatusOptions},
}

// InferType returns the field type and fixed options for a data key.
func InferType(key string) (FieldType, []Option) {
	k := strings.ToLower(key)
	for _, r := range inferenceRules {
		for _, p := range r.patterns {
			if strings.Contains(k, p) {
				return r.typ, r.options
			}
		}
	}
	return Text, nil
}

// labelFor turns "emergencyContact" into "Emergency Contact".
func labelFor(key string) string {
	var b strings.Builder
	for i, r := range key {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(r)
		case r == '_' || r == '-':
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeRules splits comma-separated tags into one rule per entry.
func normalizeRules(tags ...string) []string {
	var out []string
	for _, t := range tags {
		for _, r := range strings.Split(t, ",") {
			if r = strings.TrimSpace(r); r != "" {
				out = append(out, r)
			}
		}
	}
	return out
}
