package app

import (
	"database/sql"

	"go-attend/internal/attendance"
	"go-attend/internal/auth"
	"go-attend/internal/excuse"
	"go-attend/internal/messaging/kafka"
	"go-attend/internal/rbac"
	"go-attend/internal/rules"
	"go-attend/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	excuseRepo := excuse.NewRepository(gormDB)
	rulesRepo := rules.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(userRepo)
	userService := user.NewService(userRepo)
	attendanceService := attendance.NewServiceWithOutbox(db, attendanceRepo, userRepo, outboxRepo)
	excuseService := excuse.NewServiceWithOutbox(db, excuseRepo, attendanceService, outboxRepo)
	rulesService := rules.NewService(rulesRepo, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	attendanceHandler := attendance.NewHandlerWithRedis(attendanceService, rdb)
	excuseHandler := excuse.NewHandler(excuseService)
	rulesHandler := rules.NewHandler(rulesService)

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, rdb)
		excuse.RegisterRoutes(api, excuseHandler, rbacService)
		rules.RegisterRoutes(api, rulesHandler, rbacService)
	}

	return nil
}
