package dto

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterValidations adds the custom binding rules used by request DTOs:
//
//	flatmetadata  a map whose values are all JSON primitives (no nested objects or arrays)
//	notblank      a string with at least one non-space character
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("flatmetadata", validateFlatMetadata); err != nil {
		return err
	}
	return v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

func validateFlatMetadata(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Map {
		return false
	}
	iter := field.MapRange()
	for iter.Next() {
		if !IsPrimitive(iter.Value().Interface()) {
			return false
		}
	}
	return true
}

// IsPrimitive reports whether v decodes from a JSON scalar or null.
func IsPrimitive(v any) bool {
	switch v.(type) {
	case nil, string, bool, json.Number,
		float32, float64,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}
