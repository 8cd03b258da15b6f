package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/correction"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/summary"
	appHTTP "github.com/cmlabs-hris/attendance-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	accessService "github.com/cmlabs-hris/attendance-backend-go/internal/service/access"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	correctionService "github.com/cmlabs-hris/attendance-backend-go/internal/service/correction"
	dashboardService "github.com/cmlabs-hris/attendance-backend-go/internal/service/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/file"
	summaryService "github.com/cmlabs-hris/attendance-backend-go/internal/service/summary"
)

type repositories struct {
	tx         database.Transactor
	attendance attendance.AttendanceRepository
	correction correction.CorrectionRepository
	summary    summary.SummaryRepository
	employee   employee.Directory
	allowlist  access.AllowlistRepository
	dashboard  dashboard.DashboardRepository
	close      func()
}

func newRepositories(ctx context.Context, cfg *config.Config, clk clock.Clock) (*repositories, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("error connecting to database: %w", err)
		}
		return &repositories{
			tx:         postgresql.NewTransactor(db),
			attendance: postgresql.NewAttendanceRepository(db),
			correction: postgresql.NewCorrectionRepository(db),
			summary:    postgresql.NewSummaryRepository(db),
			employee:   postgresql.NewEmployeeRepository(db),
			allowlist:  postgresql.NewAllowlistRepository(db),
			dashboard:  postgresql.NewDashboardRepository(db),
			close:      db.Close,
		}, nil
	case config.DriverMemory:
		slog.Warn("using in-memory store, data is lost on restart")
		seed, err := memory.ParseSeed(cfg.Database.SeedEmployees)
		if err != nil {
			return nil, fmt.Errorf("invalid MEMORY_SEED_EMPLOYEES: %w", err)
		}
		store := memory.NewStore(clk)
		store.Seed(seed)
		for _, e := range seed {
			slog.Info("seeded employee", "employee_id", e.ID, "employee_code", e.EmployeeCode)
		}
		return &repositories{
			tx:         memory.NewTransactor(store),
			attendance: memory.NewAttendanceRepository(store),
			correction: memory.NewCorrectionRepository(store),
			summary:    memory.NewSummaryRepository(store),
			employee:   memory.NewEmployeeRepository(store),
			allowlist:  memory.NewAllowlistRepository(store),
			dashboard:  memory.NewDashboardRepository(store),
			close:      func() {},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	logOpts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.IsProduction() {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, logOpts)))
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, logOpts)))
	}

	clk := clock.New()
	repos, err := newRepositories(context.Background(), cfg, clk)
	if err != nil {
		log.Fatal(err)
	}
	defer repos.close()

	var blobs storage.BlobStore
	switch cfg.Storage.Type {
	case "local":
		blobs, err = storage.NewLocalStorage(cfg.Storage.BasePath)
		if err != nil {
			log.Fatal("Failed to initialize local storage: ", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()
	fileService := file.NewFileService(blobs)

	accessSvc := accessService.NewAccessService(repos.allowlist, repos.employee, cfg.Access.CheckDisabled)
	attendanceSvc := attendanceService.NewAttendanceService(
		repos.tx,
		repos.attendance,
		accessSvc,
		fileService,
		hub,
		clk,
		attendanceService.Options{
			Location:        cfg.Attendance.Location,
			MinWorkDuration: cfg.Attendance.MinWorkDuration,
		},
	)
	correctionSvc := correctionService.NewCorrectionService(
		repos.tx,
		repos.correction,
		repos.attendance,
		hub,
		clk,
		cfg.Attendance.Location,
	)
	summarySvc := summaryService.NewSummaryService(repos.summary, repos.employee, cfg.Attendance.Location)
	dashboardSvc := dashboardService.NewDashboardService(
		repos.dashboard,
		repos.employee,
		repos.correction,
		clk,
		cfg.Attendance.Location,
	)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			Env:            cfg.App.Env,
			LogLevel:       cfg.SlogLevel(),
			TrustedProxies: cfg.Access.TrustedProxies,
		},
		JWTService,
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewCorrectionHandler(correctionSvc),
		appHTTP.NewSummaryHandler(summarySvc),
		appHTTP.NewAccessHandler(accessSvc),
		appHTTP.NewDashboardHandler(dashboardSvc),
		appHTTP.NewEventHandler(hub, JWTService),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := cron.NewScheduler()
	cron.NewDashboardJobs(dashboardSvc, hub).RegisterJobs(scheduler, cfg.Dashboard.PushInterval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	// Request contexts derive from ctx so open event streams end on shutdown
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		slog.Info("server running",
			"addr", server.Addr,
			"db_driver", cfg.Database.Driver,
			"timezone", cfg.Attendance.Timezone,
			"access_check_disabled", cfg.Access.CheckDisabled,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown", "error", err)
	}
}
