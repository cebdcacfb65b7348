package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"rentro/config"
	"rentro/shared/constant"
	"rentro/shared/failure"
	"time"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

// validateClock accepts wall clock values such as "08:00" or "17:30".
func validateClock(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok {
		str = field.Field().String()
	}

	_, err := time.Parse(constant.ClockFormat, str)

	return err == nil && len(str) == len(constant.ClockFormat)
}

// validateDay accepts calendar days formatted as YYYY-MM-DD.
func validateDay(field val.FieldLevel) bool {
	_, err := time.Parse(constant.DayFormat, field.Field().String())

	return err == nil
}

func init() {
	cfg := config.Get()

	validate = val.New(val.WithRequiredStructEnabled())

	// "self" delegates to the field's own Validate(*config.Config) error method.
	err := validate.RegisterValidation("self", func(fl val.FieldLevel) bool {
		method := fl.Field().MethodByName("Validate")
		if method.IsValid() {
			result := method.Call([]reflect.Value{reflect.ValueOf(cfg)})

			return result[0].IsNil()
		}

		return false
	})
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		return fl.Field().IsZero()
	})
	if err != nil {
		panic(err)
	}

	if err = validate.RegisterValidation("clock", validateClock); err != nil {
		panic(err)
	}

	if err = validate.RegisterValidation("day", validateDay); err != nil {
		panic(err)
	}
}

// Validate decodes JSON from r into data and validates the result.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)

	if err := decoder.Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
