package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appauth "github.com/jhoicas/ObraTrack-api/internal/application/auth"
	"github.com/jhoicas/ObraTrack-api/internal/application/membership"
	"github.com/jhoicas/ObraTrack-api/internal/application/report"
	"github.com/jhoicas/ObraTrack-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/ObraTrack-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ObraTrack-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/ObraTrack-api/internal/interfaces/http"
	"github.com/jhoicas/ObraTrack-api/pkg/config"
	"github.com/jhoicas/ObraTrack-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	personRepo := postgres.NewPersonRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	membershipRepo := postgres.NewMembershipRepository(pool)
	invitationRepo := postgres.NewInvitationRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	worklogRepo := postgres.NewWorkLogRepository(pool)

	demoAccounts := make([]appauth.DemoAccount, 0, len(cfg.Auth.DemoAccounts))
	for _, acc := range cfg.Auth.DemoAccounts {
		demoAccounts = append(demoAccounts, appauth.DemoAccount{
			Email:       acc.Email,
			Password:    acc.Password,
			Name:        acc.Name,
			Role:        acc.Role,
			CompanyID:   acc.CompanyID,
			CompanySlug: acc.CompanySlug,
		})
	}
	if len(demoAccounts) > 0 {
		log.Warn().Int("cuentas", len(demoAccounts)).Msg("cuentas demo habilitadas")
	}

	verifier := appauth.NewVerifier(personRepo, demoAccounts)
	resolver := membership.NewResolver(membershipRepo)
	authUC := appauth.NewAuthUseCase(
		verifier, resolver,
		personRepo, companyRepo, membershipRepo, invitationRepo,
		appauth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	projectUC := usecase.NewProjectUseCase(projectRepo)
	worklogUC := usecase.NewWorkLogUseCase(worklogRepo, projectRepo)
	dashboardUC := usecase.NewDashboardUseCase(worklogRepo)

	// PDF: timesheet del período para supervisores y administradores
	pdfGenerator := infrapdf.NewMarotoTimesheetGenerator()
	timesheetUC := report.NewTimesheetUseCase(
		worklogRepo, projectRepo, personRepo, companyRepo, pdfGenerator,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ObraTrack API",
	}))

	// El localizador de tenant corre sobre todas las peticiones, antes de rutas.
	app.Use(httpRouter.TenantLocator())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		CompanyUC:       companyUC,
		ProjectUC:       projectUC,
		WorkLogUC:       worklogUC,
		DashboardUC:     dashboardUC,
		TimesheetUC:     timesheetUC,
		JWTSecret:       cfg.JWT.Secret,
		RateLimitMax:    cfg.RateLimit.Limit,
		RateLimitWindow: cfg.RateLimit.Window,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
