package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ObraTrack-api/internal/application/dto"
	"github.com/jhoicas/ObraTrack-api/internal/application/usecase"
)

// DashboardHandler expone los agregados de productividad de la empresa.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler de dashboard.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen semanal de horas y jornadas
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
// @Security     BearerAuth
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	principal := GetPrincipal(c)
	if principal == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
	}
	out, err := h.uc.Summary(c.Context(), principal.CompanyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
