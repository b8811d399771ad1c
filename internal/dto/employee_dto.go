package dto

type CreateEmployeeRequest struct {
	Nombre   string  `json:"nombre" validate:"required"`
	Apellido string  `json:"apellido" validate:"required"`
	Sexo     *string `json:"sexo" validate:"omitempty"`
	DNI      string  `json:"dni" validate:"required,len=8,numeric"`
	Celular  *string `json:"celular" validate:"omitempty"`

	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"omitempty,email"`
	Role     string `json:"role" validate:"omitempty,oneof=admin mesero cajero chef ayudante"`

	AvatarURL *string `json:"avatar_url" validate:"omitempty"`
	Estado    *bool   `json:"estado" validate:"omitempty"`
}

type UpdateEmployeeRequest struct {
	Nombre    *string `json:"nombre" validate:"omitempty"`
	Apellido  *string `json:"apellido" validate:"omitempty"`
	Sexo      *string `json:"sexo" validate:"omitempty"`
	Celular   *string `json:"celular" validate:"omitempty"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty"`
	Estado    *bool   `json:"estado" validate:"omitempty"`
	Role      *string `json:"role" validate:"omitempty,oneof=admin mesero cajero chef ayudante"`
}
