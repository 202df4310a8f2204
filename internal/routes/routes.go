package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/audit"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/auth"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/config"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/domain/laundry"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/lavanderia-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/lock"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/metrics"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/middleware"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/session"
	ucAccount "github.com/BruksfildServices01/lavanderia-scheduler/internal/usecase/account"
	ucReservation "github.com/BruksfildServices01/lavanderia-scheduler/internal/usecase/reservation"
	ucSlot "github.com/BruksfildServices01/lavanderia-scheduler/internal/usecase/slot"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/validators"
)

// Deps are the process-wide singletons. Redis, Audit, Metrics and Logger
// are optional.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Redis   *redis.Client
	Audit   *audit.Dispatcher
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	loc := cfg.Location()

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	repo := infraRepo.NewLaundryGormRepository(d.DB)

	var locker lock.Locker
	var revoker session.Revoker
	if d.Redis != nil {
		locker = lock.NewRedisLock(d.Redis)
		revoker = session.NewRedisStore(d.Redis)
	} else {
		locker = lock.NewMemoryLock()
		revoker = session.NewMemoryStore()
	}

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	if d.Logger != nil {
		r.Use(middleware.LoggingMiddleware(d.Logger))
	}
	r.Use(d.Metrics.Middleware())
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middleware.AuthMiddleware(issuer, revoker, repo))

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	bookUC := ucReservation.NewBookReservation(repo, locker, cfg.Policy, loc, d.Audit, d.Metrics)
	cancelUC := ucReservation.NewCancelReservation(repo, d.Audit)
	toggleUC := ucReservation.NewTogglePresence(repo, d.Audit)
	deleteReservationUC := ucReservation.NewDeleteReservation(repo, d.Audit)
	listMineUC := ucReservation.NewListMyReservations(repo, loc)
	listByDateUC := ucReservation.NewListReservationsByDate(repo, loc)

	saveSlotUC := ucSlot.NewSaveSlot(repo, cfg.Policy, d.Audit)
	deleteSlotUC := ucSlot.NewDeleteSlot(repo, d.Audit)
	listSlotsUC := ucSlot.NewListSlots(repo, loc)

	saveUserUC := ucAccount.NewSaveUser(repo, d.Audit)
	if cfg.CheckEmailDomain {
		saveUserUC.EmailDomains = validators.NewEmailDomainChecker(time.Hour)
	}

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(repo, issuer, revoker, d.Audit)
	meHandler := handlers.NewMeHandler()
	washerHandler := handlers.NewWasherHandler(repo, d.Audit)
	slotHandler := handlers.NewSlotHandler(saveSlotUC, deleteSlotUC, listSlotsUC, bookUC, loc)
	reservationHandler := handlers.NewReservationHandler(
		listMineUC,
		listByDateUC,
		cancelUC,
		toggleUC,
		deleteReservationUC,
		loc,
	)
	userHandler := handlers.NewUserHandler(repo, saveUserUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, loc)

	// ======================================================
	// 🌐 PÚBLICO
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	r.GET(middleware.LoginPath, authHandler.LoginPage)

	api := r.Group("/api")
	{
		api.POST("/auth/login",
			middleware.RateLimiter(rate.Limit(cfg.LoginRatePerSec), cfg.LoginRateBurst),
			authHandler.Login,
		)
		api.POST("/auth/logout", middleware.Require(laundry.CapViewProfile), authHandler.Logout)
		api.GET("/me", middleware.Require(laundry.CapViewProfile), meHandler.GetMe)

		// ------------------------------
		// 👤 USUÁRIO
		// ------------------------------
		api.GET("/slots", middleware.Require(laundry.CapViewSlots), slotHandler.ListAvailable)
		api.POST("/slots/:id/book", middleware.Require(laundry.CapBook), slotHandler.Book)

		mine := api.Group("/reservations", middleware.Require(laundry.CapManageOwnReservations))
		{
			mine.GET("", reservationHandler.ListMine)
			mine.DELETE("/:id", reservationHandler.Cancel)
		}

		// ------------------------------
		// 🧺 BOLSISTAS
		// ------------------------------
		staff := api.Group("/staff")
		{
			washerHandler.Resource().Register(
				staff.Group("", middleware.Require(laundry.CapManageWashers)), "/washers")
			slotHandler.Resource().Register(
				staff.Group("", middleware.Require(laundry.CapManageSlots)), "/slots")
			userHandler.Resource().Register(
				staff.Group("", middleware.Require(laundry.CapManageUsers)), "/users")

			reservations := staff.Group("/reservations", middleware.Require(laundry.CapAdministerReservations))
			{
				reservations.GET("", reservationHandler.ListByDate)
				reservations.PATCH("/:id/presence", reservationHandler.TogglePresence)
				reservations.DELETE("/:id", reservationHandler.Delete)
			}

			staff.GET("/audit-logs", middleware.Require(laundry.CapViewAuditLogs), auditLogsHandler.List)
		}
	}
}
