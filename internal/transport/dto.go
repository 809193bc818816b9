package transport

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"account-service/internal/user"

	"github.com/go-playground/validator/v10"
)

type SignupRequest struct {
	FullName        string  `json:"full_name" validate:"required"`
	Email           string  `json:"email" validate:"required"`
	Password        string  `json:"password"`
	ConfirmPassword string  `json:"confirm_password"`
	PhoneNumber     string  `json:"phone_number"`
	Country         string  `json:"country" validate:"required"`
	Role            *string `json:"role,omitempty"`
}

// Validate reports missing required fields by their JSON names.
func (r SignupRequest) Validate(v *validator.Validate) error {
	if err := v.Struct(r); err != nil {
		return errors.New(validationMessage(err))
	}
	return nil
}

func (r SignupRequest) ToInput() user.SignupInput {
	in := user.SignupInput{
		FullName:        r.FullName,
		Email:           r.Email,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
		PhoneNumber:     r.PhoneNumber,
		Country:         r.Country,
	}
	if r.Role != nil {
		in.RoleName = *r.Role
	}
	return in
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewValidator reports field errors by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "invalid request body"
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fmt.Sprintf("missing required field(s): %s", strings.Join(fields, ", "))
}
