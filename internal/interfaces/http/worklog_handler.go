package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ObraTrack-api/internal/application/dto"
	"github.com/jhoicas/ObraTrack-api/internal/application/report"
	"github.com/jhoicas/ObraTrack-api/internal/application/usecase"
	"github.com/jhoicas/ObraTrack-api/internal/domain"
)

// WorkLogHandler maneja jornadas: clock-in, clock-out, aprobación, listado y
// el reporte PDF de timesheet.
type WorkLogHandler struct {
	uc        *usecase.WorkLogUseCase
	timesheet *report.TimesheetUseCase
}

// NewWorkLogHandler construye el handler de jornadas.
func NewWorkLogHandler(uc *usecase.WorkLogUseCase, timesheet *report.TimesheetUseCase) *WorkLogHandler {
	return &WorkLogHandler{uc: uc, timesheet: timesheet}
}

// ClockIn godoc
// @Summary      Iniciar jornada en un proyecto
// @Tags         worklogs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClockInRequest  true  "project_id"
// @Success      201   {object}  dto.WorkLogResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/worklogs/clock-in [post]
// @Security     BearerAuth
func (h *WorkLogHandler) ClockIn(c *fiber.Ctx) error {
	principal := GetPrincipal(c)
	if principal == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
	}
	var in dto.ClockInRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProjectID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "project_id es requerido"})
	}
	out, err := h.uc.ClockIn(c.Context(), principal.CompanyID, principal.UserID, in)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ClockOut godoc
// @Summary      Cerrar jornada propia
// @Tags         worklogs
// @Produce      json
// @Param        id  path  string  true  "ID de la jornada"
// @Success      200  {object}  dto.WorkLogResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/worklogs/{id}/clock-out [post]
// @Security     BearerAuth
func (h *WorkLogHandler) ClockOut(c *fiber.Ctx) error {
	principal := GetPrincipal(c)
	if principal == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
	}
	out, err := h.uc.ClockOut(c.Context(), principal.CompanyID, principal.UserID, c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar jornada cerrada
// @Tags         worklogs
// @Produce      json
// @Param        id  path  string  true  "ID de la jornada"
// @Success      200  {object}  dto.WorkLogResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/worklogs/{id}/approve [post]
// @Security     BearerAuth
func (h *WorkLogHandler) Approve(c *fiber.Ctx) error {
	principal := GetPrincipal(c)
	if principal == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
	}
	out, err := h.uc.Approve(c.Context(), principal.CompanyID, principal.UserID, c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar jornadas de la empresa
// @Tags         worklogs
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.WorkLogListResponse
// @Router       /api/worklogs [get]
// @Security     BearerAuth
func (h *WorkLogHandler) List(c *fiber.Ctx) error {
	principal := GetPrincipal(c)
	if principal == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	out, err := h.uc.List(c.Context(), principal.CompanyID, page.Limit, page.Offset)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

// TimesheetReport godoc
// @Summary      Reporte PDF de jornadas por período
// @Tags         worklogs
// @Produce      application/pdf
// @Param        from  query  string  true   "fecha inicio (YYYY-MM-DD)"
// @Param        to    query  string  true   "fecha fin (YYYY-MM-DD)"
// @Success      200   {file}  binary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/timesheet [get]
// @Security     BearerAuth
func (h *WorkLogHandler) TimesheetReport(c *fiber.Ctx) error {
	principal := GetPrincipal(c)
	if principal == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
	}
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser YYYY-MM-DD"})
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser YYYY-MM-DD"})
	}
	// El límite superior incluye el día completo.
	to = to.Add(24*time.Hour - time.Nanosecond)

	pdfBytes, err := h.timesheet.Generate(c.Context(), principal.CompanyID, from, to)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido"})
		}
		return h.mapError(c, err)
	}
	filename := fmt.Sprintf("timesheet_%s_%s.pdf", c.Query("from"), c.Query("to"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// mapError traduce sentinelas de dominio a códigos HTTP.
func (h *WorkLogHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no autorizado"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "estado de jornada en conflicto"})
	case errors.Is(err, domain.ErrUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Message: "servicio no disponible, intente más tarde"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
