package config

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/encoderlee/eosapi/chain"
)

// NewValidator returns a validator that knows the "eosname" and
// "compression" tags.
func NewValidator() (*validator.Validate, error) {
	v := validator.New()
	err := v.RegisterValidation("eosname", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			panic(fmt.Errorf("%q is not a string", fl.FieldName()))
		}
		return chain.IsValidName(fl.Field().String())
	})
	if err != nil {
		return nil, err
	}
	err = v.RegisterValidation("compression", func(fl validator.FieldLevel) bool {
		_, err := chain.ParseCompression(fl.Field().String())
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}
