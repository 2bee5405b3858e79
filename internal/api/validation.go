package api

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterJSONFieldNames makes gin's validator report fields by their json tag
// ("email") instead of the Go field name ("Email").
func RegisterJSONFieldNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// NewValidationError converts a ShouldBindJSON error into the response body.
// Decoding failures (empty body, malformed JSON, wrong types) carry no field list.
func NewValidationError(err error) ErrorResponse {
	resp := ErrorResponse{Error: ErrCodeValidation, Message: "request validation failed"}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		resp.Message = "request body must be a valid JSON object"
		return resp
	}
	for _, fe := range verrs {
		resp.Fields = append(resp.Fields, FieldError{Field: fe.Field(), Reason: reason(fe)})
	}
	return resp
}

// NewFieldError builds a validation response for a single field rejected outside of binding.
func NewFieldError(field, why string) ErrorResponse {
	return ErrorResponse{
		Error:   ErrCodeValidation,
		Message: "request validation failed",
		Fields:  []FieldError{{Field: field, Reason: why}},
	}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed on the '" + fe.Tag() + "' rule"
	}
}
