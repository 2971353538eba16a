package animals

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"zoo-admin/internal/domain/status"
)

// ValidationError lista los problemas por campo (nombre JSON).
// errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

var inputValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("feeding_schedule", func(fl validator.FieldLevel) bool {
		_, err := status.ParseSchedule(fl.Field().String())
		return err == nil
	})
	return v
}

// validate corre las reglas de formato y después las de referencias
// (presa, recinto, categoría). selfID es "" en altas.
func (s *Service) validate(ctx context.Context, selfID string, in Input) error {
	verr := &ValidationError{}

	if err := inputValidator.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			verr.add(fe.Field(), describe(fe))
		}
	}

	if in.PreyID != nil && verr.Fields["prey_id"] == "" {
		msg, err := s.checkPrey(ctx, selfID, *in.PreyID)
		if err != nil {
			return err
		}
		if msg != "" {
			verr.add("prey_id", msg)
		}
	}
	if in.EnclosureID != nil && verr.Fields["enclosure_id"] == "" {
		ok, err := s.enclosures.Exists(ctx, *in.EnclosureID)
		if err != nil {
			return err
		}
		if !ok {
			verr.add("enclosure_id", "unknown enclosure")
		}
	}
	if in.CategoryID != nil && verr.Fields["category_id"] == "" {
		ok, err := s.categories.Exists(ctx, *in.CategoryID)
		if err != nil {
			return err
		}
		if !ok {
			verr.add("category_id", "unknown category")
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// checkPrey devuelve un mensaje de validación, o err si falló el repo.
func (s *Service) checkPrey(ctx context.Context, selfID, preyID string) (string, error) {
	if selfID != "" && preyID == selfID {
		return "must reference a different animal", nil
	}
	_, err := s.repo.GetByID(ctx, preyID)
	if errors.Is(err, ErrNotFound) {
		return "unknown animal", nil
	}
	return "", err
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "uuid":
		return "must be a valid id"
	case "feeding_schedule":
		return `must look like "8-9, 12:00-13:00" (whole hours)`
	default:
		return "is invalid"
	}
}
