package validation

import (
	"reflect"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a validator that reports fields by their JSON names.
func New() *validatorv10.Validate {
	v := validatorv10.New(validatorv10.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterStructValidation(goldItemStructValidation, GoldItemRequest{})

	return v
}

// goldItemStructValidation rejects an in_stock that is null or not a boolean.
func goldItemStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(GoldItemRequest)

	if req.InStock.Invalid() {
		sl.ReportError(req.InStock, "in_stock", "InStock", "bool", "")
	}
}
