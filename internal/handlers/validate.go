package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// validate checks form inputs against the struct tags declared on the
// api request types.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput runs client-side validation and returns a user-facing
// message for the first failed rule, or "" when the input is valid.
// Only required/length/shape rules live here — everything else is the
// backend's call.
func validateInput(v any) string {
	err := validate.Struct(v)
	if err == nil {
		return ""
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Please fill in all required fields."
	}

	return fieldMessage(verrs[0])
}

// fieldMessage translates a single validation failure into the message
// the form displays.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Email":
		if fe.Tag() == "email" {
			return "Email must be a valid email address."
		}
		return "Email is required."
	case "Password":
		if fe.Tag() == "min" {
			return "Password must be at least 8 characters."
		}
		return "Password is required."
	case "PasswordConfirmation":
		if fe.Tag() == "eqfield" {
			return "Password confirmation does not match."
		}
		return "Password confirmation is required."
	case "Name":
		if fe.Tag() == "max" {
			return "Name is too long (max 255 characters)."
		}
		return "Name is required."
	case "Title":
		if fe.Tag() == "max" {
			return "Title is too long (max 255 characters)."
		}
		return "Title is required."
	case "Content":
		return "Content is too long (max 100,000 characters)."
	case "CategoryID":
		return "Please select a category."
	case "IsActive":
		return "Status must be Yes or No."
	}
	return "Please fill in all required fields."
}
