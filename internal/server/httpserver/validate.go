package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// bind decodes the JSON body into target and validates it.
func (s *Server) bind(w http.ResponseWriter, r *http.Request, target any) error {
	if err := decodeJSON(w, r, target); err != nil {
		return err
	}
	if err := s.validate.Struct(target); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return badRequest(validationMessage(verrs[0]), err)
		}
		return badRequest("Invalid request body", err)
	}
	return nil
}

func validationMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", capitalize(field))
	case "email":
		return "Please include a valid email"
	case "min":
		if field == "password" {
			return fmt.Sprintf("Please enter a password with %s or more characters", fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", capitalize(field), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", capitalize(field), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", capitalize(field))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
