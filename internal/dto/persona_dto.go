package dto

// ─── Filters ─────────────────────────────────────────────────────────────────

type PersonaFilter struct {
	PageFilter
	Tipo   string `form:"tipo"`
	Buscar string `form:"buscar"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearPersonaRequest struct {
	Tipo            string  `json:"tipo"             validate:"required,oneof=fisica juridica"`
	NumeroDocumento string  `json:"numero_documento" validate:"required,min=1"`
	Nombre          string  `json:"nombre"           validate:"required,min=2"`
	Apellido        *string `json:"apellido"`
	FechaNacimiento *string `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
	Email           *string `json:"email"            validate:"omitempty,email"`
	Telefono        *string `json:"telefono"`
	Direccion       *string `json:"direccion"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PersonaResponse struct {
	ID              string  `json:"id"`
	Tipo            string  `json:"tipo"`
	NumeroDocumento string  `json:"numero_documento"`
	Nombre          string  `json:"nombre"`
	Apellido        *string `json:"apellido"`
	NombreCompleto  string  `json:"nombre_completo"`
	Email           *string `json:"email"`
	Telefono        *string `json:"telefono"`
	Activo          bool    `json:"activo"`
}

type EmpleadoResponse struct {
	ID      string  `json:"id"`
	Persona string  `json:"persona"`
	Cargo   *string `json:"cargo"`
	Activo  bool    `json:"activo"`
}
