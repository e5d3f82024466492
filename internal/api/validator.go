package api

import (
	"sync"

	"shop/internal/utils"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var registerValidatorsOnce sync.Once

// registerValidators 为 gin 的绑定校验器注册自定义规则，例如 binding:"slug"
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			logrus.Warn("gin validator engine is not go-playground/validator, custom rules skipped")
			return
		}
		if err := v.RegisterValidation("slug", validateSlug); err != nil {
			logrus.WithError(err).Error("failed to register slug validator")
		}
	})
}

func validateSlug(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return utils.IsValidSlug(value)
}
