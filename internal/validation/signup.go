package validation

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/go-playground/validator/v10"
)

// Error flag element ids, in the order the checks run.
const (
	FlagFirstName       = "first-name-error"
	FlagLastName        = "last-name-error"
	FlagEmail           = "email-error"
	FlagPhone           = "phone-error"
	FlagGender          = "gender-error"
	FlagPassword        = "password-error"
	FlagConfirmPassword = "confirm-password-error"
)

var SignupFlags = []string{
	FlagFirstName,
	FlagLastName,
	FlagEmail,
	FlagPhone,
	FlagGender,
	FlagPassword,
	FlagConfirmPassword,
}

// SignupForm is what the signup page holds at submit time. The flag tag names
// the error element each rule controls.
type SignupForm struct {
	FirstName       string `flag:"first-name-error" validate:"notblank"`
	LastName        string `flag:"last-name-error" validate:"notblank"`
	Email           string `flag:"email-error" validate:"emailshape"`
	Phone           string `flag:"phone-error" validate:"phonedigits"`
	Gender          string `flag:"gender-error" validate:"oneof=male female"`
	Password        string `flag:"password-error" validate:"passwordlen"`
	ConfirmPassword string `flag:"confirm-password-error" validate:"eqfield=Password"`
}

// Result lists the flags of every failing check. Checks never short-circuit.
type Result struct {
	Failed []string `json:"failed"`
}

func (r Result) OK() bool {
	return len(r.Failed) == 0
}

func (r Result) Has(flag string) bool {
	return slices.Contains(r.Failed, flag)
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		if name := sf.Tag.Get("flag"); name != "" {
			return name
		}
		return sf.Name
	})

	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return NonBlank(fl.Field().String())
	})
	mustRegister(v, "emailshape", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
	mustRegister(v, "phonedigits", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})
	mustRegister(v, "passwordlen", func(fl validator.FieldLevel) bool {
		return ValidPassword(fl.Field().String())
	})

	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s: %v", tag, err))
	}
}

func (v *Validator) ValidateSignup(form SignupForm) (Result, error) {
	err := v.v.Struct(form)
	if err == nil {
		return Result{}, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Result{}, fmt.Errorf("validate signup: %w", err)
	}

	failed := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		failed = append(failed, fe.Field())
	}

	// keep check order regardless of how the validator walked the struct
	out := make([]string, 0, len(failed))
	for _, flag := range SignupFlags {
		if slices.Contains(failed, flag) {
			out = append(out, flag)
		}
	}

	return Result{Failed: out}, nil
}
