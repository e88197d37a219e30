package dto

import "time"

// ClockInRequest entrada para iniciar jornada.
type ClockInRequest struct {
	ProjectID string `json:"project_id" validate:"required,uuid"`
}

// WorkLogResponse salida de una jornada.
type WorkLogResponse struct {
	ID         string     `json:"id"`
	CompanyID  string     `json:"company_id"`
	ProjectID  string     `json:"project_id"`
	PersonID   string     `json:"person_id"`
	ClockIn    time.Time  `json:"clock_in"`
	ClockOut   *time.Time `json:"clock_out,omitempty"`
	Hours      string     `json:"hours"`
	HourlyRate string     `json:"hourly_rate"`
	Amount     string     `json:"amount"`
	Status     string     `json:"status"`
	ApprovedBy string     `json:"approved_by,omitempty"`
}

// WorkLogListResponse listado paginado de jornadas.
type WorkLogListResponse struct {
	Items []WorkLogResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// DashboardSummaryResponse agregados para el panel de la empresa.
type DashboardSummaryResponse struct {
	TotalHours      string `json:"total_hours"`
	OpenLogs        int    `json:"open_logs"`
	PendingApproval int    `json:"pending_approval"`
	Since           string `json:"since"` // inicio del período agregado (2006-01-02)
}
