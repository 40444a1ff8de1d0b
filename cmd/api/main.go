package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/teamtrack-hq/teamtrack-backend/internal/config"
	appHTTP "github.com/teamtrack-hq/teamtrack-backend/internal/handler/http"
	"github.com/teamtrack-hq/teamtrack-backend/internal/pkg/cron"
	"github.com/teamtrack-hq/teamtrack-backend/internal/pkg/database"
	"github.com/teamtrack-hq/teamtrack-backend/internal/pkg/jwt"
	"github.com/teamtrack-hq/teamtrack-backend/internal/repository/postgresql"
	payrollService "github.com/teamtrack-hq/teamtrack-backend/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	adjustmentRepo := postgresql.NewAdjustmentRepository(db)
	advanceRepo := postgresql.NewAdvanceRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	payrollSvc := payrollService.NewPayrollService(
		payrollRepo,
		employeeRepo,
		attendanceRepo,
		policyRepo,
		adjustmentRepo,
		advanceRepo,
		timesheetRepo,
	)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	router := appHTTP.NewRouter(cfg, jwtService, payrollHandler)

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler()
		cron.NewPayrollJobs(payrollSvc).RegisterJobs(scheduler)
		scheduler.Start()
		defer scheduler.Stop()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- http.ListenAndServe(port, router)
	}()

	select {
	case err := <-serverErr:
		fmt.Println("Server error:", err)
	case sig := <-quit:
		fmt.Println("Shutting down on signal:", sig)
	}
}
