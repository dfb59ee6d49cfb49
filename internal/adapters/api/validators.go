package api

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// registerValidators makes gin's shared validator report query parameter names
func registerValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		v.RegisterTagNameFunc(queryFieldName)
	})
	return registerErr
}

// describeBindingError turns validator output into a short client-facing message
func describeBindingError(err error) string {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s query parameter is required", field)
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}

// queryFieldName reports fields by their query parameter name
func queryFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}
