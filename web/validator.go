package web

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// 站内题目编号, 如 "A"、"B2"
var problemCodeRegexp = regexp.MustCompile(`^[A-Z][0-9]{0,2}$`)

// RegisterValidations 注册自定义参数校验规则
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("problemref", func(fl validator.FieldLevel) bool {
		return problemCodeRegexp.MatchString(fl.Field().String())
	})
}
