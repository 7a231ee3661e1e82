package handlers

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/SscSPs/penger_ledger/internal/utils"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags used by the dto package
// on gin's validator engine. It is safe to call more than once.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		if err = v.RegisterValidation("currency_code", validateCurrencyCode); err != nil {
			return
		}
		err = v.RegisterValidation("decimal_gte0", validateNonNegativeDecimal)
	})
	return err
}

// decimalValue lets tags see a decimal.Decimal as its string form.
func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	return utils.IsCurrencyCode(strings.ToUpper(fl.Field().String()))
}

func validateNonNegativeDecimal(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && !d.IsNegative()
}
