package employee

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	ErrNotFound     = errors.New("employee not found")
	ErrInvalidInput = errors.New("invalid employee input")
)

// Employee is the record exposed by the /api/employees endpoints.
type Employee struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Salary float64 `json:"salary"`
}

// Input carries the fields accepted when creating an employee.
// Pointers distinguish a missing field from a zero value.
type Input struct {
	Name   *string  `json:"name" validate:"required,notblank"`
	Salary *float64 `json:"salary" validate:"required,gte=0"`
}

// Validate checks that both fields are present and well formed.
func (in Input) Validate() error {
	return validateStruct(in)
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Name   *string  `json:"name" validate:"omitnil,notblank"`
	Salary *float64 `json:"salary" validate:"omitnil,gte=0"`
}

// Validate checks the supplied fields only. An empty patch is valid.
func (p Patch) Validate() error {
	return validateStruct(p)
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Salary == nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, fe.Field())
	case "notblank":
		return fmt.Errorf("%w: %s must not be empty", ErrInvalidInput, fe.Field())
	case "gte":
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, fe.Field())
	default:
		return fmt.Errorf("%w: %s is invalid", ErrInvalidInput, fe.Field())
	}
}

// Seed provides sample employees for local development (SEED_DATA=true).
func Seed() []Employee {
	return []Employee{
		{ID: 1, Name: "Luis Torres", Salary: 5435},
		{ID: 2, Name: "Ana Ramírez", Salary: 4800},
		{ID: 3, Name: "Joe Mcmillan", Salary: 6200},
	}
}
