package tasks

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/ojet-labs/ojet/internal/bundler"
	"github.com/ojet-labs/ojet/internal/scaffold"
)

var customValidators = map[string]validator.Func{
	"component_kind": isComponentKind,
}

var customTranslations = map[string]string{
	"bundler":        "{0} must be a supported bundler: {1}",
	"component_kind": "{0} must be a component kind (vcomponent or composite): {1}",
	"component_name": "{0} must be lowercase and contain a hyphen: {1}",
	"oneof":          "{0} must be one of [{2}]: {1}",
	"parameters":     "{0} {2}",
}

// ValidationError is one failed rule, with a translated message.
type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

// ValidationErrors collects every failed rule of a task.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, 0, len(ve))
	for _, e := range ve {
		msgs = append(msgs, e.Detail)
	}
	return "invalid task: " + strings.Join(msgs, "; ")
}

// Validator wraps a validator instance and a translator.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// NewValidator creates a Validator with English translations registered.
func NewValidator() (*Validator, error) {
	validate := validator.New()

	// Use the "task" tag to override the field name if present.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("task"); name != "" {
			return name
		}
		return fld.Name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, found := uni.GetTranslator("en")
	if !found {
		return nil, errors.New("translator not found")
	}

	for name, fn := range customValidators {
		if err := validate.RegisterValidation(name, fn); err != nil {
			return nil, err
		}
	}
	validate.RegisterStructValidation(validateParameters, Task{})

	if err := registerTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Validator{validate: validate, trans: trans}, nil
}

// Task validates t and returns ValidationErrors when a rule fails.
func (v *Validator) Task(t Task) error {
	err := v.validate.Struct(t)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ves := make(ValidationErrors, 0, len(verrs))
	for _, verr := range verrs {
		ves = append(ves, ValidationError{
			Field:  verr.Field(),
			Detail: verr.Translate(v.trans),
		})
	}
	return ves
}

// validateParameters checks the positional arguments each task needs.
func validateParameters(sl validator.StructLevel) {
	t := sl.Current().Interface().(Task)

	var want string
	switch {
	case t.Name == NameCreate && t.Scope == ScopeComponent:
		want = "requires exactly one component name"
	case t.Name == NameCreate && t.Scope == "":
		want = "requires exactly one application name"
	case t.Name == NameAdd:
		want = "requires exactly one bundler name"
	case t.Name == NameBuild:
		if len(t.Parameters) != 0 {
			sl.ReportError(t.Parameters, "parameters", "Parameters", "parameters", "takes no parameters")
		}
		return
	default:
		return
	}
	if len(t.Parameters) != 1 {
		sl.ReportError(t.Parameters, "parameters", "Parameters", "parameters", want)
		return
	}

	arg := t.Parameters[0]
	switch {
	case t.Name == NameAdd && !bundler.Supported(arg):
		sl.ReportError(arg, "bundler", "Parameters", "bundler", "")
	case t.Scope == ScopeComponent && scaffold.ValidateName(arg) != nil:
		sl.ReportError(arg, "component", "Parameters", "component_name", "")
	}
}

func isComponentKind(fl validator.FieldLevel) bool {
	kind := fl.Field().String()
	for _, k := range scaffold.KindNames() {
		if k == kind {
			return true
		}
	}
	return false
}

func registerTranslations(v *validator.Validate, trans ut.Translator) error {
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		return fmt.Errorf("failed to register default translations: %w", err)
	}

	for tag, message := range customTranslations {
		if err := v.RegisterTranslation(tag, trans,
			func(ut ut.Translator) error {
				return ut.Add(tag, message, true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T(tag, fe.Field(), fmt.Sprintf("%v", fe.Value()), fe.Param())
				return t
			},
		); err != nil {
			return fmt.Errorf("failed to register custom translation for %s: %w", tag, err)
		}
	}

	return nil
}
