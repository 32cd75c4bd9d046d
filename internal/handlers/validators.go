package handlers

import (
	"sync"

	"github.com/SscSPs/cashflow_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidators adds the binding tags used by the request DTOs.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("categorytype", validateCategoryType)
		_ = v.RegisterValidation("isodate", validateISODate)
	})
}

func validateCategoryType(fl validator.FieldLevel) bool {
	return domain.CategoryType(fl.Field().String()).IsValid()
}

func validateISODate(fl validator.FieldLevel) bool {
	_, ok := domain.ParseDay(fl.Field().String())
	return ok
}
