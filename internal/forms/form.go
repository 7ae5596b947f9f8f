package forms

import (
	"errors"
	"fmt"
	"maps"

	"github.com/go-playground/validator/v10"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
)

// Form holds the current values of a built field set. A Form is owned by
// one caller and is not safe for concurrent use.
type Form struct {
	Fields   []Field
	values   map[string]any
	validate *validator.Validate
}

func newForm(fields []Field, v *validator.Validate) *Form {
	values := make(map[string]any, len(fields))
	for _, f := range fields {
		values[f.Key] = f.Value
	}
	return &Form{Fields: fields, values: values, validate: v}
}

// Set updates a field value. Disabled fields may be set programmatically.
func (f *Form) Set(key string, value any) error {
	if _, ok := f.values[key]; !ok {
		return fmt.Errorf("%w: unknown field %q", domain.ErrInvalidForm, key)
	}
	f.values[key] = value
	return nil
}

func (f *Form) Value(key string) any { return f.values[key] }

// Errors maps each invalid enabled field to the first rule it fails.
func (f *Form) Errors() map[string]string {
	errs := make(map[string]string)
	for _, fd := range f.Fields {
		if fd.Disabled || len(fd.Validators) == 0 {
			continue
		}
		v := f.values[fd.Key]
		if v == nil {
			v = ""
		}
		if failed := f.check(v, ruleTag(fd.Validators)); failed != "" {
			errs[fd.Key] = failed
		}
	}
	return errs
}

// check returns the first rule v fails, or "". A value whose type the rules
// cannot apply to fails as "type".
func (f *Form) check(v any, tag string) (failed string) {
	defer func() {
		if r := recover(); r != nil {
			failed = "type"
		}
	}()
	err := f.validate.Var(v, tag)
	if err == nil {
		return ""
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return ve[0].Tag()
	}
	return err.Error()
}

func (f *Form) Valid() bool { return len(f.Errors()) == 0 }

// ValidationError lists the failing rule per field. It matches
// domain.ErrInvalidForm.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %d field(s) failed validation", domain.ErrInvalidForm, len(e.Fields))
}

func (e *ValidationError) Unwrap() error { return domain.ErrInvalidForm }

// Submit returns every value, disabled fields included, when the form is
// valid. Otherwise the error is a *ValidationError.
func (f *Form) Submit() (map[string]any, error) {
	if errs := f.Errors(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	return maps.Clone(f.values), nil
}
