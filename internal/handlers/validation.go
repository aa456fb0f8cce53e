package handlers

import (
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validationSetup sync.Once

// registerDecimalValidation teaches gin's validator to treat decimal.Decimal
// fields as plain numbers, so tags like "required" and custom rules see the
// numeric value instead of an opaque struct.
func registerDecimalValidation() {
	validationSetup.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
	})
}
