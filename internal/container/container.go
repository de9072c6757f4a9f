package container

import (
	"database/sql"

	"github.com/Josue-Alexander/gestionitp/internal/assets"
	auditLogRepo "github.com/Josue-Alexander/gestionitp/internal/auditlog"
	"github.com/Josue-Alexander/gestionitp/internal/assignments"
	"github.com/Josue-Alexander/gestionitp/internal/categories"
	"github.com/Josue-Alexander/gestionitp/internal/departments"
	"github.com/Josue-Alexander/gestionitp/internal/locations"
	"github.com/Josue-Alexander/gestionitp/internal/maintenance"
	"github.com/Josue-Alexander/gestionitp/internal/reports"
	"github.com/Josue-Alexander/gestionitp/internal/repository"
	"github.com/Josue-Alexander/gestionitp/internal/users"
	"github.com/Josue-Alexander/gestionitp/pkg/auditlog"
	"github.com/Josue-Alexander/gestionitp/pkg/security"
)

type Container struct {
	Repository        *repository.Repository
	AuditLog          *auditlog.Auditlog
	LoginHandler      *security.LoginHandler
	AssetHandler      *assets.AssetHandler
	AssignmentHandler *assignments.AssignmentHandler
	MaintenanceHandler *maintenance.MaintenanceHandler
	CategoryHandler   *categories.CategoryHandler
	DepartmentHandler *departments.DepartmentHandler
	LocationHandler   *locations.LocationHandler
	UserHandler       *users.UsersHandler
	ReportHandler     *reports.ReportHandler
	AuditLogHandler   *auditLogRepo.Handler
}

func NewAppContainer(db *sql.DB) *Container {
	repo := repository.NewRepository(db)

	eventRepo := auditLogRepo.NewRepository(repo)
	auditLog := auditlog.NewAuditLog(eventRepo)

	userRepo := users.NewRepository(repo)
	assetRepo := assets.NewRepository(repo)
	assignmentRepo := assignments.NewRepository(repo)
	assignmentService := assignments.NewService(repo, assignmentRepo, assetRepo)
	maintenanceRepo := maintenance.NewRepository(repo)
	categoryRepo := categories.NewRepository(repo)
	departmentRepo := departments.NewRepository(repo)
	locationRepo := locations.NewRepository(repo)
	reportRepo := reports.NewRepository(repo)

	return &Container{
		Repository:        repo,
		AuditLog:          auditLog,
		LoginHandler:      security.NewLoginHandler(userRepo, auditLog),
		AssetHandler:      assets.NewHandler(assetRepo, auditLog),
		AssignmentHandler: assignments.NewHandler(assignmentService, auditLog),
		MaintenanceHandler: maintenance.NewHandler(maintenanceRepo, auditLog),
		CategoryHandler:   categories.NewCategoryHandler(categoryRepo, auditLog),
		DepartmentHandler: departments.NewDepartmentHandler(departmentRepo, auditLog),
		LocationHandler:   locations.NewLocationHandler(locationRepo, auditLog),
		UserHandler:       users.NewHandler(userRepo, auditLog),
		ReportHandler:     reports.NewReportHandler(reportRepo),
		AuditLogHandler:   auditLogRepo.NewHandler(eventRepo),
	}
}
