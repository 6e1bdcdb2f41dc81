package binder

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

const (
	dirpath  = "dirpath"
	mx       = "max"
	mn       = "min"
	oneof    = "oneof"
	required = "required"
)

func formatSchemaConversionError(err schema.ConversionError) string {
	return fmt.Sprintf("%q should be of type %s", err.Key, err.Type)
}

func formatValidationError(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case dirpath:
		return fmt.Sprintf("%q is not a valid directory path", field)
	case mx:
		return fmt.Sprintf("%q %s less than or equal to %s", field, boundPhrase(err), err.Param())
	case mn:
		return fmt.Sprintf("%q %s greater than or equal to %s", field, boundPhrase(err), err.Param())
	case oneof:
		valids := []string{}
		for _, p := range strings.Fields(err.Param()) {
			valids = append(valids, fmt.Sprintf("%q", p))
		}
		return fmt.Sprintf("%q must be one of the following: %s", field, strings.Join(valids, ", "))
	case required:
		return fmt.Sprintf("%q is required", field)
	default:
		return fmt.Sprintf("%q failed the %q validation", field, err.Tag())
	}
}

// boundPhrase returns the verb of a min/max message, which depends on whether
// the bound applies to a number or a length.
func boundPhrase(err validator.FieldError) string {
	//exhaustive:ignore
	switch err.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "must be"
	default:
		return "length must be"
	}
}
