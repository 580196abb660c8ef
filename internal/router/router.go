// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/table-reservation/internal/config"
	"github.com/iliyamo/table-reservation/internal/handler"
	"github.com/iliyamo/table-reservation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check,
// used by load balancers and monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI wires all authenticated endpoints.  Every route under /v1
// requires a valid Bearer token carrying an ADMIN or USER role; table
// administration and the unfiltered reservation listing additionally
// require ADMIN.  The Redis-backed rate limiter covers the whole group
// and the response cache fronts the GET endpoints; both degrade to
// pass-through when rdb is nil.
func RegisterAPI(e *echo.Echo, tables *handler.TableHandler, reservations *handler.ReservationHandler, jwtSecret string, rdb *redis.Client) {
	api := e.Group("/v1")
	api.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	api.Use(middleware.JWTAuth(jwtSecret))
	api.Use(middleware.RequireRole("ADMIN", "USER"))

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// Table registry, read side.  The static /tables/available route takes
	// precedence over /tables/:id in echo's router.
	api.GET("/tables", tables.ListTables, cache)
	api.GET("/tables/available", reservations.AvailableTables)
	api.GET("/tables/:id", tables.GetTable)

	// Reservation ledger on behalf of the requester.
	api.POST("/reservations", reservations.CreateReservation)
	api.GET("/my-reservations", reservations.ListMyReservations)
	api.DELETE("/reservations/:id", reservations.DeleteReservation)

	// Administrative surface: table CRUD, bootstrap seeding and the
	// unfiltered reservation listing/patch.
	admin := api.Group("/admin")
	admin.Use(middleware.RequireRole("ADMIN"))
	admin.POST("/tables", tables.CreateTable)
	admin.PATCH("/tables/:id", tables.UpdateTable)
	admin.DELETE("/tables/:id", tables.DeleteTable)
	admin.POST("/tables/seed", tables.SeedTables)
	admin.GET("/reservations", reservations.ListAllReservations)
	admin.PATCH("/reservations/:id", reservations.UpdateReservation)
}
