package app

import (
	"os"

	"go-attend/internal/middleware"
	"go-attend/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp connects infrastructure, runs migrations and registers every
// module's routes on the router.
func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	if err := migrate(gormDB); err != nil {
		return err
	}

	rdb := connectRedisOptional(os.Getenv("REDIS_ADDR"))

	router.Use(middleware.RequestID())

	return registerModules(router, sqlDB, gormDB, rdb)
}

// Redis is an accelerator here, not a dependency. The API serves without it,
// just with idempotency replay and rules caching disabled.
func connectRedisOptional(addr string) *redis.Client {
	if addr == "" {
		zap.L().Warn("REDIS_ADDR not set, idempotency and caching disabled")
		return nil
	}
	rdb, err := connection.ConnectRedisWithRetry(addr, 5)
	if err != nil {
		zap.L().Warn("redis unavailable, idempotency and caching disabled", zap.Error(err))
		return nil
	}
	return rdb
}
