package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ObraTrack-api/internal/application/auth"
	"github.com/jhoicas/ObraTrack-api/internal/application/report"
	"github.com/jhoicas/ObraTrack-api/internal/application/usecase"
	"github.com/jhoicas/ObraTrack-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	CompanyUC       *usecase.CompanyUseCase
	ProjectUC       *usecase.ProjectUseCase
	WorkLogUC       *usecase.WorkLogUseCase
	DashboardUC     *usecase.DashboardUseCase
	TimesheetUC     *report.TimesheetUseCase
	JWTSecret       string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// Router registra las rutas de la API. Los conjuntos de roles por ruta son
// explícitos; no hay jerarquía implícita entre roles.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público, con rate limit por IP)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth", RateLimit(deps.RateLimitMax, deps.RateLimitWindow))
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/set-password", authHandler.SetPassword)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/me", authHandler.Me)
	protected.Post("/auth/refresh-company",
		RequireRole(entity.RoleAdmin), authHandler.RefreshCompany)
	protected.Post("/invitations",
		RequireRole(entity.RoleAdmin), authHandler.Invite)

	// Companies (gestión restringida a roles de plataforma)
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", RequireRole(entity.RoleAdmin, entity.RoleSuperuser), companyHandler.Create)
	companies.Get("/", RequireRole(entity.RoleAdmin, entity.RoleSuperuser), companyHandler.List)
	companies.Get("/:slug", companyHandler.GetBySlug)

	// Projects (obras)
	projects := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC)
	projects.Post("/", RequireRole(entity.RoleSupervisor, entity.RoleAdmin), projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.GetByID)

	// Worklogs (jornadas)
	worklogs := protected.Group("/worklogs")
	worklogHandler := NewWorkLogHandler(deps.WorkLogUC, deps.TimesheetUC)
	worklogs.Post("/clock-in", worklogHandler.ClockIn)
	worklogs.Post("/:id/clock-out", worklogHandler.ClockOut)
	worklogs.Post("/:id/approve",
		RequireRole(entity.RoleSupervisor, entity.RoleAdmin), worklogHandler.Approve)
	worklogs.Get("/", worklogHandler.List)

	// Reportes
	protected.Get("/reports/timesheet",
		RequireRole(entity.RoleSupervisor, entity.RoleAdmin), worklogHandler.TimesheetReport)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.Summary)
}
