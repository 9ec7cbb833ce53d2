package httpx

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the package-level validator instance. Field names in error
// maps come from json tags so the UI can key messages to its inputs.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// checkStruct validates a payload and converts failures into the
// field-keyed error map of the NormalizedError shape. Returns nil when the
// payload is valid.
func checkStruct(payload any) map[string][]string {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string][]string{"": {err.Error()}}
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()], fieldMessage(fe))
	}
	return fields
}

// fieldMessage renders a user-facing message for one failed rule.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", fe.Field())
	case "eqfield":
		return fmt.Sprintf("The %s field does not match.", fe.Field())
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", fe.Field(), fe.Param())
	case "required_without":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	default:
		return fmt.Sprintf("The %s field is invalid.", fe.Field())
	}
}
