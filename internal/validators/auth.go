package validators

import (
	"context"
	"strings"

	"etalase/internal/apperror"
	"etalase/internal/dto"

	"github.com/go-playground/validator/v10"
)

var authMessages = Messages{
	"name.required":            "User required",
	"name.min":                 "Too short User name",
	"name.max":                 "Too long User name",
	"email.required":           "Email required",
	"email.email":              "Invalid email address",
	"password.required":        "Password required",
	"password.min":             "Password must be at least 6 characters",
	"passwordConfirm.required": "Password confirmation required",
	"passwordConfirm.eqfield":  "Password Confirmation incorrect",
}

func Signup(v *validator.Validate, users EmailChecker) *Chain[dto.SignupInput] {
	return New[dto.SignupInput](v, authMessages).
		Prepare(func(in *dto.SignupInput) {
			in.Email = strings.ToLower(strings.TrimSpace(in.Email))
		}).
		Resolve("email", func(ctx context.Context, in *dto.SignupInput) (Rule[dto.SignupInput], error) {
			inUse, err := users.EmailInUse(ctx, in.Email)
			if err != nil {
				return nil, err
			}
			return func(in *dto.SignupInput) []apperror.FieldError {
				if !inUse {
					return nil
				}
				return []apperror.FieldError{FieldErr("email", in.Email, "E-mail already in use")}
			}, nil
		})
}

func Login(v *validator.Validate) *Chain[dto.LoginInput] {
	return New[dto.LoginInput](v, authMessages).
		Prepare(func(in *dto.LoginInput) {
			in.Email = strings.ToLower(strings.TrimSpace(in.Email))
		})
}
