package app

import (
	"context"
	"database/sql"

	"go-hris-leave/internal/attendance"
	"go-hris-leave/internal/bootstrap"
	"go-hris-leave/internal/config"
	"go-hris-leave/internal/employee"
	"go-hris-leave/internal/leaverequest"
	"go-hris-leave/internal/ledger"
	"go-hris-leave/internal/messaging/kafka"
	"go-hris-leave/internal/rbac"
	"go-hris-leave/internal/rbac/infra"
	"go-hris-leave/internal/shared/counter"
	"go-hris-leave/internal/sickleave"
	"go-hris-leave/internal/vacation"
	"go-hris-leave/internal/vacationcancellation"
	"go-hris-leave/internal/vacationextension"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	employeeDirectory := employee.NewRepository(gormDB)
	ledgerRepo := ledger.NewRepository(gormDB)
	vacationRepo := vacation.NewRepository(gormDB)
	sickLeaveRepo := sickleave.NewRepository(gormDB)
	extensionRepo := vacationextension.NewRepository(gormDB)
	cancellationRepo := vacationcancellation.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(cfg.RBACModelPath)
	if err != nil {
		return err
	}
	if err := rbacRepo.EnsurePermissions(ctx, rbac.Catalog); err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)
	if err := rbacService.LoadPolicy(ctx); err != nil {
		return err
	}

	// --- Services ---
	auditLogger := bootstrap.NewStdoutAuditLogger()
	vacationLedger := ledger.NewLedger(ledgerRepo, auditLogger)
	balanceService := ledger.NewBalanceService(ledgerRepo, rdb, cfg.BalanceCacheTTL)
	vacationService := vacation.NewService(db, vacationRepo, employeeDirectory, vacationLedger, outboxRepo, counterRepo)
	sickLeaveService := sickleave.NewService(db, sickLeaveRepo, employeeDirectory, outboxRepo, counterRepo)
	extensionService := vacationextension.NewService(db, extensionRepo, vacationRepo, employeeDirectory, vacationLedger, outboxRepo)
	cancellationService := vacationcancellation.NewService(db, cancellationRepo, vacationRepo, vacationLedger, outboxRepo)
	attendanceService := attendance.NewService(db, attendanceRepo, employeeDirectory, nil)
	requestService := leaverequest.NewService(vacationService, sickLeaveService, extensionService, cancellationService)

	// --- Handlers ---
	ledgerHandler := ledger.NewHandler(balanceService)
	vacationHandler := vacation.NewHandler(vacationService)
	sickLeaveHandler := sickleave.NewHandler(sickLeaveService)
	extensionHandler := vacationextension.NewHandler(extensionService)
	cancellationHandler := vacationcancellation.NewHandler(cancellationService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	requestHandler := leaverequest.NewHandler(requestService, rbacService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		ledger.RegisterRoutes(api, ledgerHandler, rbacService)
		vacation.RegisterRoutes(api, vacationHandler, rbacService, rdb)
		sickleave.RegisterRoutes(api, sickLeaveHandler, rbacService, rdb)
		vacationextension.RegisterRoutes(api, extensionHandler, rbacService, rdb)
		vacationcancellation.RegisterRoutes(api, cancellationHandler, rbacService, rdb)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, cfg.RateLimitRPS, cfg.RateLimitBurst)
		leaverequest.RegisterRoutes(api, requestHandler)
		rbac.RegisterRoutes(api, rbacHandler)
	}

	return nil
}
