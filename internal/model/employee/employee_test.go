package employee_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/employees-api/internal/model/employee"
)

func TestInputValidateMessages(t *testing.T) {
	tests := []struct {
		name string
		in   employee.Input
		want string
	}{
		{"missing name", employee.Input{Salary: floatPtr(1)}, "name is required"},
		{"blank name", newInput(" \t", 1), "name must not be empty"},
		{"missing salary", employee.Input{Name: strPtr("x")}, "salary is required"},
		{"negative salary", newInput("x", -0.5), "salary must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			require.ErrorIs(t, err, employee.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	assert.NoError(t, newInput("Luis Torres", 0).Validate())
}

func TestPatchValidate(t *testing.T) {
	assert.NoError(t, employee.Patch{}.Validate())
	assert.NoError(t, employee.Patch{Salary: floatPtr(0)}.Validate())
	assert.NoError(t, employee.Patch{Name: strPtr("Ana")}.Validate())

	err := employee.Patch{Name: strPtr("")}.Validate()
	require.ErrorIs(t, err, employee.ErrInvalidInput)
	assert.Contains(t, err.Error(), "name must not be empty")

	err = employee.Patch{Salary: floatPtr(-1)}.Validate()
	require.ErrorIs(t, err, employee.ErrInvalidInput)
	assert.Contains(t, err.Error(), "salary must not be negative")
}
