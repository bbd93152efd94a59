package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError 单个字段的校验失败，Field 为 JSON 路径，如 modules[0].lessons[1].title
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e ValidationErrors) withPrefix(prefix string) ValidationErrors {
	out := make(ValidationErrors, len(e))
	for i, fe := range e {
		if fe.Field == "" {
			fe.Field = prefix
		} else if strings.HasPrefix(fe.Field, "[") {
			fe.Field = prefix + fe.Field
		} else {
			fe.Field = prefix + "." + fe.Field
		}
		fe.Message = message(fe.Field, fe.Rule, fe.Param)
		out[i] = fe
	}
	return out
}

// Has 是否包含指定字段和规则的错误，rule 为空时只比较字段
func (e ValidationErrors) Has(field, rule string) bool {
	for _, fe := range e {
		if fe.Field == field && (rule == "" || fe.Rule == rule) {
			return true
		}
	}
	return false
}

// AsValidationErrors 从错误链中取出 ValidationErrors
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func indexPrefix(i int) string {
	return fmt.Sprintf("[%d]", i)
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		field := trimRoot(fe.Namespace())
		out = append(out, FieldError{
			Field:   field,
			Rule:    fe.Tag(),
			Param:   fe.Param(),
			Message: message(field, fe.Tag(), fe.Param()),
		})
	}
	return out
}

// trimRoot 去掉命名空间开头的结构体名和平铺字段的路径段
func trimRoot(ns string) string {
	i := strings.Index(ns, ".")
	if i < 0 {
		return ""
	}
	parts := strings.Split(ns[i+1:], ".")
	kept := parts[:0]
	for _, p := range parts {
		if p != inlineSegment {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ".")
}

func message(field, rule, param string) string {
	if field == "" {
		field = "record"
	}
	switch rule {
	case "required", "required_unless":
		return field + " is required"
	case "enum":
		return field + " is not an allowed value"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "len":
		return fmt.Sprintf("%s must have length %s", field, param)
	case "url":
		return field + " must be a valid URL"
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	}
	if msg, ok := ruleMessages[rule]; ok {
		return field + " " + msg
	}
	return fmt.Sprintf("%s failed on %s", field, rule)
}
