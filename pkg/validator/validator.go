package validator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// BindJSONStrict decodes a JSON body rejecting unknown fields, then runs the
// binding-tag validation. Gin's own ShouldBindJSON silently drops fields that
// no struct member matches, which lets typos through.
func BindJSONStrict(c *gin.Context, obj any) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(obj); err != nil {
		return err
	}
	if binding.Validator == nil {
		return nil
	}
	return binding.Validator.ValidateStruct(obj)
}

func FormatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, fieldError := range validationErrors {
			message := getFieldErrorMessage(fieldError)
			messages = append(messages, message)
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must have at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must have at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "uuid":
		return fmt.Sprintf("%s must be a valid uuid", field)
	case "dive":
		return fmt.Sprintf("%s contains an invalid entry", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Name":           "Name",
		"Email":          "Email",
		"Password":       "Password",
		"Role":           "Role",
		"Title":          "Title",
		"Semester":       "Semester",
		"StudentID":      "Student",
		"AdvisorID":      "Advisor",
		"CoadvisorID":    "Co-advisor",
		"Status":         "Status",
		"Type":           "Type",
		"StartDate":      "Start date",
		"EndDate":        "End date",
		"LocalID":        "Room",
		"PresentationID": "Presentation",
		"Capacity":       "Capacity",
		"UserID":         "User",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
