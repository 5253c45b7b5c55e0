package util

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateDTO 校验 validate 标签，只返回第一条失败信息
func ValidateDTO(dto any) error {
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			firstError := vErrs[0]
			return &FieldError{Field: firstError.Field(), Tag: firstError.Tag()}
		}
		return err
	}
	return nil
}

// FieldError 单个字段的校验失败
type FieldError struct {
	Field string
	Tag   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field [%s] failed on rule [%s]", e.Field, e.Tag)
}
