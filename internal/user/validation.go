package user

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	passwordSpecialChars = "!@#$%^&*()_+"

	passwordRule = "min=8,password_charset"
	phoneRule    = "len=10,number"
)

var validate = newRuleValidator()

func newRuleValidator() *validator.Validate {
	v := validator.New()

	// Uppercase letter, digit and special character, all ASCII.
	v.RegisterValidation("password_charset", func(fl validator.FieldLevel) bool {
		var hasUpper, hasDigit, hasSpecial bool
		for _, c := range fl.Field().String() {
			switch {
			case c >= 'A' && c <= 'Z':
				hasUpper = true
			case c >= '0' && c <= '9':
				hasDigit = true
			case strings.ContainsRune(passwordSpecialChars, c):
				hasSpecial = true
			}
		}
		return hasUpper && hasDigit && hasSpecial
	})

	return v
}

// PasswordsMatch compares the password with its confirmation byte for byte.
func PasswordsMatch(password, confirm string) bool {
	return password == confirm
}

// IsStrongPassword requires at least 8 characters including an ASCII
// uppercase letter, a digit and one of !@#$%^&*()_+.
func IsStrongPassword(password string) bool {
	return validate.Var(password, passwordRule) == nil
}

// IsValidPhoneNumber accepts exactly ten ASCII digits.
func IsValidPhoneNumber(phone string) bool {
	return validate.Var(phone, phoneRule) == nil
}

// ValidateSignup applies the signup rules in order and returns the
// first failure.
func ValidateSignup(in SignupInput) error {
	if !PasswordsMatch(in.Password, in.ConfirmPassword) {
		return ErrPasswordMismatch
	}
	if !IsStrongPassword(in.Password) {
		return ErrWeakPassword
	}
	if !IsValidPhoneNumber(in.PhoneNumber) {
		return ErrInvalidPhone
	}
	return nil
}
