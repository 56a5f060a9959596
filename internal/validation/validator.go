package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Submission carries one intake form, raw on the way in and sanitized after
// Validate has run. Optional fields are nil when absent or blank.
type Submission struct {
	Name        string `form:"name" validate:"required"`
	Email       string `form:"email" validate:"required,email"`
	Subject     string `form:"subject" validate:"required,min=5"`
	Category    string `form:"category" validate:"required"`
	Priority    string `form:"priority" validate:"required,oneof=low medium high critical"`
	Description string `form:"description" validate:"required,min=10"`

	Phone          *string `form:"phone"`
	Company        *string `form:"company"`
	TaxIDA         *string `form:"tax_id_a"`
	TaxIDB         *string `form:"tax_id_b"`
	Urgency        *string `form:"urgency" validate:"omitempty,oneof=low medium high"`
	Impact         *string `form:"impact" validate:"omitempty,oneof=low medium high critical"`
	Terminal       *string `form:"terminal"`
	Location       *string `form:"location"`
	OccurrenceDate *string `form:"occurrence_date"`
	OccurrenceTime *string `form:"occurrence_time"`
	RelatedURL     *string `form:"related_url"`
	Notes          *string `form:"notes"`
}

// IntakeValidator sanitizes and validates ticket submissions. All violations
// are collected and reported together, never fail-fast.
type IntakeValidator struct {
	validate   *validator.Validate
	categories map[string]int64
}

// New builds a validator bound to the injected category table.
func New(categories map[string]int64) *IntakeValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &IntakeValidator{validate: v, categories: categories}
}

// Validate sanitizes the submission in place and returns the list of
// human-readable violations, empty when the submission is acceptable.
func (v *IntakeValidator) Validate(sub *Submission) []string {
	sub.sanitize()

	var violations []string
	if err := v.validate.Struct(sub); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return []string{"invalid submission"}
		}
		for _, fe := range fieldErrs {
			violations = append(violations, messageFor(fe))
		}
	}

	if sub.Category != "" {
		if _, ok := v.categories[sub.Category]; !ok {
			violations = append(violations, "invalid category")
		}
	}

	return violations
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", fe.Field())
	case "email":
		return "invalid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("invalid %s", fe.Field())
	default:
		return fmt.Sprintf("field '%s' is invalid", fe.Field())
	}
}

// sanitize cleans every field in place. Description and notes keep their line
// breaks; everything else is single-line.
func (s *Submission) sanitize() {
	s.Name = Sanitize(s.Name)
	s.Email = Sanitize(s.Email)
	s.Subject = Sanitize(s.Subject)
	s.Category = Sanitize(s.Category)
	s.Priority = Sanitize(s.Priority)
	s.Description = SanitizeMultiline(s.Description)

	for _, field := range []**string{
		&s.Phone, &s.Company, &s.TaxIDA, &s.TaxIDB,
		&s.Urgency, &s.Impact, &s.Terminal, &s.Location,
		&s.OccurrenceDate, &s.OccurrenceTime, &s.RelatedURL,
	} {
		*field = sanitizeOptional(*field, Sanitize)
	}
	s.Notes = sanitizeOptional(s.Notes, SanitizeMultiline)
}

func sanitizeOptional(val *string, clean func(string) string) *string {
	if val == nil {
		return nil
	}
	cleaned := clean(*val)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
