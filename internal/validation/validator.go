// Package validation checks request schemas and uploaded files at the HTTP boundary.
//
// Request types declare their rules with go-playground/validator tags:
//
//	type signupRequest struct {
//	    Email           string `json:"email" validate:"required"`
//	    Password        string `json:"password" validate:"required"`
//	    ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
//	}
//
// ValidateStruct returns nil or a *RequestValidationError whose HasTag lets the
// caller choose the client-facing message.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

func jsonTagName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (e FieldError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s failed %s=%s", e.Field, e.Tag, e.Param)
	}
	return fmt.Sprintf("%s failed %s", e.Field, e.Tag)
}

type RequestValidationError struct {
	Fields []FieldError
}

func (ve *RequestValidationError) Error() string {
	if len(ve.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		messages = append(messages, f.Error())
	}
	return strings.Join(messages, "; ")
}

// HasTag reports whether any field failed the given rule.
func (ve *RequestValidationError) HasTag(tag string) bool {
	for _, f := range ve.Fields {
		if f.Tag == tag {
			return true
		}
	}
	return false
}

// GetValidator returns the shared validator; it caches struct metadata and is
// safe for concurrent use.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonTagName)
	})
	return validate
}

// ValidateStruct validates s. String fields should be trimmed by the caller
// so "required" also rejects whitespace-only input.
func ValidateStruct(s any) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &RequestValidationError{Fields: []FieldError{{Field: "", Tag: "invalid"}}}
	}

	out := &RequestValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}
