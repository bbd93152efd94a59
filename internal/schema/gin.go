package schema

import (
	"reflect"

	"github.com/gin-gonic/gin/binding"
)

// ginValidator 让 gin 的 ShouldBind* 使用同一套规则，并返回 ValidationErrors
type ginValidator struct{}

func (ginValidator) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}
	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct, reflect.Slice, reflect.Array:
		return Validate(obj)
	}
	return nil
}

func (ginValidator) Engine() any {
	return Engine()
}

// InstallGinValidator 替换 gin 默认的校验器
func InstallGinValidator() {
	binding.Validator = ginValidator{}
}
