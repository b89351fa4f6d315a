// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("direction", validateDirection)
		_ = v.RegisterValidation("transaction_status", validateTransactionStatus)
		_ = v.RegisterValidation("stats_filter", validateStatsFilter)
	}
}

func validateDirection(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "credit", "debit":
		return true
	}
	return false
}

func validateTransactionStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "posted", "failed":
		return true
	}
	return false
}

func validateStatsFilter(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "today", "7days", "30days", "90days", "year":
		return true
	}
	return false
}
