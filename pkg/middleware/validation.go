package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Shape check only; the per-warehouse layout grammar decides which
// levels and subsections exist
var locationCodeRegex = regexp.MustCompile(`^[A-Z]{2,}-[0-9]{3}(\.[A-Z0-9]){0,2}$`)

// InitValidator registers custom binding validators
func InitValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("location_code", func(fl validator.FieldLevel) bool {
		return locationCodeRegex.MatchString(fl.Field().String())
	})

	v.RegisterValidation("worker_pin", func(fl validator.FieldLevel) bool {
		pin := fl.Field().Int()
		return pin >= 1000 && pin <= 999999
	})

	v.RegisterValidation("task_priority", func(fl validator.FieldLevel) bool {
		p := fl.Field().Int()
		return p >= 1 && p <= 10
	})
}
