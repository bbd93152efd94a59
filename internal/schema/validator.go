package schema

import (
	"reflect"
	"strings"
	"sync"

	"edu_platform_backend/pkg/monitoring"

	"github.com/go-playground/validator/v10"
)

// Enum 由封闭字符串集合构成的类型
type Enum interface {
	IsValid() bool
}

var (
	once     sync.Once
	validate *validator.Validate
)

// Engine 返回全局共享的校验器，规则写在结构体的 binding 标签上，与 gin 绑定共用
func Engine() *validator.Validate {
	once.Do(func() {
		validate = newValidator()
	})
	return validate
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("enum", validateEnum)
	registerStructRules(v)
	return v
}

// inlineSegment 不单独出现在 JSON 中的字段（如课程内容的载荷，平铺在 content 上），
// 生成字段路径时整段去掉
const inlineSegment = "-"

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return inlineSegment
	case "":
		return fld.Name
	}
	return name
}

func validateEnum(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.String && field.String() == "" {
		return false
	}
	if e, ok := field.Interface().(Enum); ok {
		return e.IsValid()
	}
	return false
}

// Validate 校验任意记录（结构体、指针或切片），失败时返回 ValidationErrors
func Validate(v any) error {
	if err := validateValue(reflect.ValueOf(v)); err != nil {
		monitoring.ValidationFailures.WithLabelValues(typeName(v)).Inc()
		return err
	}
	return nil
}

func validateValue(rv reflect.Value) error {
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return translate(Engine().Struct(rv.Interface()))
	case reflect.Slice, reflect.Array:
		var all ValidationErrors
		for i := 0; i < rv.Len(); i++ {
			if err := validateValue(rv.Index(i)); err != nil {
				if ve, ok := err.(ValidationErrors); ok {
					all = append(all, ve.withPrefix(indexPrefix(i))...)
					continue
				}
				return err
			}
		}
		if len(all) > 0 {
			return all
		}
	}
	return nil
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && (t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice) {
		t = t.Elem()
	}
	if t == nil {
		return "nil"
	}
	return t.Name()
}
