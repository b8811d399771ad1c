package service

import (
	"context"
	"strings"

	"luwakpos/internal/entity"
	"luwakpos/internal/repository"
	"luwakpos/internal/utils"
)

type CreateEmployeeInput struct {
	Nombre   string
	Apellido string
	Sexo     *string
	DNI      string
	Celular  *string

	Username string
	Password string
	Email    string
	Role     entity.RoleType

	AvatarURL *string
	Estado    *bool
}

type UpdateEmployeeInput struct {
	Nombre    *string
	Apellido  *string
	Sexo      *string
	Celular   *string
	AvatarURL *string
	Estado    *bool
	Role      *entity.RoleType
}

// EmployeeWithUser is an employee row joined with account fields.
type EmployeeWithUser struct {
	entity.Employee
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type EmployeeService struct {
	employees repository.EmployeeRepository
	users     repository.UserRepository
	secrets   PasswordHasher

	adminRole    string
	standardRole string
}

func NewEmployeeService(
	employees repository.EmployeeRepository,
	users repository.UserRepository,
	secrets PasswordHasher,
	adminRole string,
	standardRole string,
) *EmployeeService {
	return &EmployeeService{
		employees:    employees,
		users:        users,
		secrets:      secrets,
		adminRole:    adminRole,
		standardRole: standardRole,
	}
}

func (s *EmployeeService) List(ctx context.Context, limit int) ([]EmployeeWithUser, error) {
	employees, err := s.employees.List(ctx, limit)
	if err != nil {
		return nil, err
	}

	result := make([]EmployeeWithUser, 0, len(employees))
	for i := range employees {
		row := EmployeeWithUser{Employee: employees[i]}
		row.Email = employees[i].User.Email
		row.Role = employees[i].User.Role
		if employees[i].User.Username != nil {
			row.Username = *employees[i].User.Username
		}
		result = append(result, row)
	}
	return result, nil
}

// Create provisions the user account and the staff profile together.
func (s *EmployeeService) Create(ctx context.Context, input CreateEmployeeInput) (*entity.Employee, error) {
	if strings.TrimSpace(input.Nombre) == "" || strings.TrimSpace(input.Apellido) == "" {
		return nil, ErrInvalidInput
	}
	if len(input.DNI) != 8 {
		return nil, ErrInvalidInput
	}
	if strings.TrimSpace(input.Username) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.employees.FindByDNI(ctx, input.DNI)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDNIConflict
	}

	existingUser, err := s.users.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, ErrUsernameConflict
	}

	role := input.Role
	if role == "" {
		role = entity.RoleTypeMesero
	}
	schemaRole := s.standardRole
	if role == entity.RoleTypeAdmin {
		schemaRole = s.adminRole
	}

	email := utils.NormalizeEmail(input.Email)
	if email == "" {
		email = input.Username + "@luwak.local"
	}

	hash, err := s.secrets.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	username := input.Username
	user := &entity.User{
		Email:        email,
		Username:     &username,
		PasswordHash: hash,
		Role:         schemaRole,
		RoleType:     role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	estado := true
	if input.Estado != nil {
		estado = *input.Estado
	}

	employee := &entity.Employee{
		UserID:    user.ID,
		Nombre:    input.Nombre,
		Apellido:  input.Apellido,
		Sexo:      input.Sexo,
		DNI:       input.DNI,
		Celular:   input.Celular,
		AvatarURL: input.AvatarURL,
		Estado:    estado,
		RoleType:  role,
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *EmployeeService) Update(ctx context.Context, id int64, input UpdateEmployeeInput) (*entity.Employee, error) {
	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}

	if input.Nombre != nil {
		employee.Nombre = *input.Nombre
	}
	if input.Apellido != nil {
		employee.Apellido = *input.Apellido
	}
	if input.Sexo != nil {
		employee.Sexo = input.Sexo
	}
	if input.Celular != nil {
		employee.Celular = input.Celular
	}
	if input.AvatarURL != nil {
		employee.AvatarURL = input.AvatarURL
	}
	if input.Estado != nil {
		employee.Estado = *input.Estado
	}
	if input.Role != nil {
		employee.RoleType = *input.Role
	}

	if err := s.employees.Update(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// Deactivate flips the profile off instead of deleting; accounts are never
// hard-deleted.
func (s *EmployeeService) Deactivate(ctx context.Context, id int64) error {
	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if employee == nil {
		return ErrEmployeeNotFound
	}
	employee.Estado = false
	return s.employees.Update(ctx, employee)
}
