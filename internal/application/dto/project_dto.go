package dto

import "time"

// CreateProjectRequest entrada para crear un proyecto (obra).
type CreateProjectRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	HourlyRate string `json:"hourly_rate" validate:"omitempty"` // decimal como string, ej. "45000.00"
	StartDate  string `json:"start_date" validate:"omitempty"`  // formato 2006-01-02; hoy si vacío
}

// ProjectResponse salida de un proyecto.
type ProjectResponse struct {
	ID         string     `json:"id"`
	CompanyID  string     `json:"company_id"`
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	HourlyRate string     `json:"hourly_rate"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ProjectListResponse listado paginado de proyectos.
type ProjectListResponse struct {
	Items []ProjectResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
