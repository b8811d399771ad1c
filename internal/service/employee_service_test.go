package service

import (
	"context"
	"testing"

	"luwakpos/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmployeeService() (*EmployeeService, *fakeEmployeeRepo, *fakeUserRepo) {
	employees := &fakeEmployeeRepo{}
	users := &fakeUserRepo{}
	return NewEmployeeService(employees, users, plainHasher{}, "administrador", "empleado"), employees, users
}

func TestCreateEmployee(t *testing.T) {
	svc, _, users := newEmployeeService()

	employee, err := svc.Create(context.Background(), CreateEmployeeInput{
		Nombre:   "Maria",
		Apellido: "Quispe",
		DNI:      "12345678",
		Username: "maria",
		Password: "secret123",
		Role:     entity.RoleTypeCajero,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleTypeCajero, employee.RoleType)
	assert.True(t, employee.Estado)

	user, err := users.FindByUsername(context.Background(), "maria")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "empleado", user.Role)
	assert.Equal(t, "maria@luwak.local", user.Email)
	assert.Equal(t, "plain:secret123", user.PasswordHash)
}

func TestCreateEmployeeAdminRole(t *testing.T) {
	svc, _, users := newEmployeeService()

	_, err := svc.Create(context.Background(), CreateEmployeeInput{
		Nombre:   "Jefa",
		Apellido: "Local",
		DNI:      "87654321",
		Username: "jefa",
		Password: "secret123",
		Role:     entity.RoleTypeAdmin,
	})
	require.NoError(t, err)

	user, err := users.FindByUsername(context.Background(), "jefa")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "administrador", user.Role)
}

func TestCreateEmployeeValidation(t *testing.T) {
	svc, _, _ := newEmployeeService()

	tests := []struct {
		name  string
		input CreateEmployeeInput
	}{
		{"missing name", CreateEmployeeInput{Apellido: "Quispe", DNI: "12345678", Username: "x", Password: "y"}},
		{"short dni", CreateEmployeeInput{Nombre: "Maria", Apellido: "Quispe", DNI: "123", Username: "x", Password: "y"}},
		{"missing credentials", CreateEmployeeInput{Nombre: "Maria", Apellido: "Quispe", DNI: "12345678"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateEmployeeConflicts(t *testing.T) {
	svc, _, _ := newEmployeeService()

	base := CreateEmployeeInput{
		Nombre: "Maria", Apellido: "Quispe", DNI: "12345678",
		Username: "maria", Password: "secret123",
	}
	_, err := svc.Create(context.Background(), base)
	require.NoError(t, err)

	dup := base
	dup.Username = "otra"
	_, err = svc.Create(context.Background(), dup)
	assert.ErrorIs(t, err, ErrDNIConflict)

	dup = base
	dup.DNI = "11112222"
	_, err = svc.Create(context.Background(), dup)
	assert.ErrorIs(t, err, ErrUsernameConflict)
}

func TestUpdateEmployee(t *testing.T) {
	svc, _, _ := newEmployeeService()

	employee, err := svc.Create(context.Background(), CreateEmployeeInput{
		Nombre: "Maria", Apellido: "Quispe", DNI: "12345678",
		Username: "maria", Password: "secret123",
	})
	require.NoError(t, err)

	nombre := "Mariana"
	role := entity.RoleTypeChef
	updated, err := svc.Update(context.Background(), employee.ID, UpdateEmployeeInput{
		Nombre: &nombre,
		Role:   &role,
	})
	require.NoError(t, err)
	assert.Equal(t, "Mariana", updated.Nombre)
	assert.Equal(t, "Quispe", updated.Apellido)
	assert.Equal(t, entity.RoleTypeChef, updated.RoleType)

	_, err = svc.Update(context.Background(), 999, UpdateEmployeeInput{})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestDeactivateEmployee(t *testing.T) {
	svc, employees, _ := newEmployeeService()

	employee, err := svc.Create(context.Background(), CreateEmployeeInput{
		Nombre: "Maria", Apellido: "Quispe", DNI: "12345678",
		Username: "maria", Password: "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), employee.ID))

	stored, err := employees.FindByID(context.Background(), employee.ID)
	require.NoError(t, err)
	assert.False(t, stored.Estado)

	assert.ErrorIs(t, svc.Deactivate(context.Background(), 999), ErrEmployeeNotFound)
}
