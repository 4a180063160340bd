package utils

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate   *validator.Validate
	emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
)

var orderStatuses = map[string]struct{}{
	"ONGOING":   {},
	"CANCELLED": {},
	"PENDING":   {},
	"COMPLETED": {},
}

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("reset_code", validateResetCode); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("order_status", validateOrderStatus); err != nil {
		panic(err)
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidationMessage flattens validator errors into a stable, client-safe message.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid input"
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, strings.ToLower(fe.Field())+" failed '"+fe.Tag()+"'")
	}
	return "Invalid input: " + strings.Join(parts, ", ")
}

func validateResetCode(fl validator.FieldLevel) bool {
	return IsResetCode(fl.Field().String())
}

func validateOrderStatus(fl validator.FieldLevel) bool {
	_, ok := orderStatuses[fl.Field().String()]
	return ok
}

func IsValidEmail(email string) bool {
	email = strings.TrimSpace(strings.ToLower(email))
	return emailRegex.MatchString(email)
}
