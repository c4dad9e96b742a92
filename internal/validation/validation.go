// Package validation checks and normalizes lead submissions.
//
// Every field is checked against an ordered rule chain (required, format,
// minimum length, maximum length). Fields are checked in declaration order and
// the first failing rule is reported; remaining fields are not inspected.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/safepsy/backend/internal/model"
)

// emailPattern is a loose shape check, not RFC 5322. RE2's \s is ASCII
// only, so the class also excludes \v, Unicode separators and the BOM.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

const emailTag = "leademail"

// Error is a client-caused validation failure with a user-facing message.
type Error struct {
	Field   string // JSON field name, e.g. "fullName"
	Rule    string // failing rule: required, leademail, min, max, oneof
	Message string
}

func (e *Error) Error() string { return e.Message }

// ContactInput is the raw body of a contact form submission.
type ContactInput struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

// SubscriptionInput is the raw body of a waitlist submission.
type SubscriptionInput struct {
	Email        string `json:"email"`
	FullName     string `json:"fullName"`
	Role         string `json:"role"`
	ConsentGiven bool   `json:"consentGiven"`
}

type field struct {
	name  string
	label string
	value *string
	tags  string
}

// Validator validates lead inputs. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator with the lead email rule registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation(emailTag, func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Contact normalizes in and validates every field. On success the returned
// input has trimmed fields and a lowercased email.
func (v *Validator) Contact(in ContactInput) (ContactInput, error) {
	in.Email = normalizeEmail(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)

	err := v.check([]field{
		{"email", "Email", &in.Email, "required," + emailTag + ",max=255"},
		{"fullName", "Full name", &in.FullName, "required,min=2,max=100"},
		{"subject", "Subject", &in.Subject, "required,min=5,max=200"},
		{"message", "Message", &in.Message, "required,min=10,max=2000"},
	})
	return in, err
}

// Subscription normalizes in and validates it. Only the email is required;
// fullName and role are checked when present.
func (v *Validator) Subscription(in SubscriptionInput) (SubscriptionInput, error) {
	in.Email = normalizeEmail(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Role = strings.TrimSpace(in.Role)

	err := v.check([]field{
		{"email", "Email", &in.Email, "required," + emailTag + ",max=255"},
		{"fullName", "Full name", &in.FullName, "omitempty,max=100"},
		{"role", "Role", &in.Role, "omitempty,oneof=" + strings.Join(model.Roles, " ") + ",max=50"},
	})
	return in, err
}

func (v *Validator) check(fields []field) error {
	for _, f := range fields {
		err := v.validate.Var(*f.value, f.tags)
		if err == nil {
			continue
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return err
		}
		fe := verrs[0]
		return &Error{
			Field:   f.name,
			Rule:    fe.Tag(),
			Message: message(f.label, fe.Tag(), fe.Param()),
		}
	}
	return nil
}

func message(label, tag, param string) string {
	switch tag {
	case "required":
		return label + " is required"
	case emailTag:
		return "Please provide a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, param)
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", label, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))
	default:
		return label + " is invalid"
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
