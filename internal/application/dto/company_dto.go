package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa. El slug se deriva del
// nombre si no se envía.
type CreateCompanyRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	NameLocalized string `json:"name_localized" validate:"omitempty,max=200"`
	Slug          string `json:"slug" validate:"omitempty,max=64"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	NameLocalized string    `json:"name_localized,omitempty"`
	Slug          string    `json:"slug"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CompanyListResponse listado paginado de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
