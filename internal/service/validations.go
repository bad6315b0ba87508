package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"alcyxob/gym-buddy/internal/workout"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

// InitValidator builds the shared validator. Constructors call it, so calling
// it from main or tests is only needed to fail fast.
func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		// Rejects strings that are empty after trimming whitespace
		validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		// Caps the number of set rows a routine can ask a session to build
		validate.RegisterValidation("setcount", func(fl validator.FieldLevel) bool {
			return workout.ParseSetCount(fl.Field().String()) <= workout.MaxSetCount
		})
	})
}

// validateStruct wraps every validation failure in ErrValidationFailed so
// callers can match it with errors.Is and still read the field details.
func validateStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(msgs, "; "))
	}
	return fmt.Errorf("%w: %v", ErrValidationFailed, err)
}
