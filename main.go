package main

import (
	"html/template"
	"net/http"

	"timesheet/approval"
	"timesheet/config"
	"timesheet/database"
	"timesheet/handlers"
	"timesheet/mailer"
	"timesheet/middleware"
	"timesheet/models"
	"timesheet/report"
	"timesheet/store"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found")
	}

	cfg := config.Load()

	middleware.SetJWTSecret(cfg.JWTSecret)

	if err := database.Init(cfg.DatabaseURL); err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}

	entries := store.NewGormStore(database.GetDB())
	mail := mailer.NewSMTPSender(cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost, cfg.SMTPPort, cfg.FromEmail, cfg.SMTPTLS)
	approvalSvc := approval.NewService(entries, mail, cfg.FallbackEmail)
	aggregator := report.NewAggregator(entries)

	// Each page template is paired with base.
	templates := make(map[string]*template.Template)
	pages := []string{
		"login", "register", "change-password",
		"entries", "entry-form", "entry-edit",
		"report", "projects",
	}
	for _, page := range pages {
		templates[page] = template.Must(template.ParseFiles(
			"templates/base.html",
			"templates/"+page+".html",
		))
	}

	authHandler := handlers.NewAuthHandler(cfg, templates)
	timesheetHandler := handlers.NewTimesheetHandler(cfg, templates, entries, approvalSvc)
	reportHandler := handlers.NewReportHandler(cfg, templates, aggregator, mail)
	adminHandler := handlers.NewAdminHandler(cfg, templates)

	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	// Public routes
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})
	router.Get("/login", authHandler.LoginPage)
	router.Post("/login", authHandler.Login)
	router.Get("/register", authHandler.RegisterPage)
	router.Post("/register", authHandler.Register)

	// Protected routes
	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(entries, cfg.DefaultHourlyRate))

		r.Get("/logout", authHandler.Logout)
		r.Get("/change-password", authHandler.ChangePasswordPage)
		r.Post("/change-password", authHandler.ChangePassword)

		// Timesheet entries (scoped per role inside the handlers)
		r.Get("/entries", timesheetHandler.ListEntries)
		r.Get("/entries/new", timesheetHandler.NewEntryPage)
		r.Post("/entries/new", timesheetHandler.CreateEntry)
		r.Get("/entries/edit", timesheetHandler.EditEntryPage)
		r.Post("/entries/edit", timesheetHandler.UpdateEntry)
		r.Post("/entries/delete", timesheetHandler.DeleteEntry)

		// Report view is open to everyone, scoped to own entries for
		// non-managers.
		r.Get("/report", reportHandler.Report)

		// Manager only routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleManager))
			r.Post("/entries/approve", timesheetHandler.ApproveEntry)
			r.Get("/export/xlsx", reportHandler.ExportXLSX)
			r.Post("/report/email", reportHandler.EmailReport)
			r.Get("/projects", adminHandler.ProjectsPage)
			r.Post("/projects", adminHandler.CreateProject)
			r.Post("/projects/delete", adminHandler.DeleteProject)
			r.Post("/tasks", adminHandler.CreateTask)
			r.Post("/tasks/delete", adminHandler.DeleteTask)
		})
	})

	log.WithField("port", cfg.ServerPort).Info("server starting")
	log.Info("default manager credentials: manager / manager")
	log.Fatal(http.ListenAndServe(":"+cfg.ServerPort, router))
}
