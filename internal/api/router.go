package api

import (
	"log/slog"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pavalka/shareit/internal/auth"
	"github.com/pavalka/shareit/internal/booking"
	bookingHttp "github.com/pavalka/shareit/internal/booking/http"
	"github.com/pavalka/shareit/internal/item"
	itemHttp "github.com/pavalka/shareit/internal/item/http"
	"github.com/pavalka/shareit/internal/obs"
	"github.com/pavalka/shareit/internal/user"
	userHttp "github.com/pavalka/shareit/internal/user/http"
)

// Config holds the services and settings the router is assembled from.
type Config struct {
	IsProduction    bool
	ProdOrigins     string
	DefaultPageSize int
	Logger          *slog.Logger

	UserService    user.Service
	ItemService    item.Service
	BookingService booking.Service
	JWTManager     *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - RequestID + AccessLog: structured request logging.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(obs.RequestID(), obs.AccessLog(cfg.Logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	itemHandler := itemHttp.NewHandler(cfg.ItemService, cfg.BookingService, cfg.DefaultPageSize)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.DefaultPageSize)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		itemHttp.RegisterRoutes(v1, itemHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
	}

	return r
}

func corsConfig(cfg Config) cors.Config {
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{
		"http://localhost:3000",
		"http://localhost:8081", // Swagger
	}
	// cors.New panics on an empty origin list, so prod keeps the local ones
	// until PROD_ORIGINS is set.
	if origins := splitOrigins(cfg.ProdOrigins); cfg.IsProduction && len(origins) > 0 {
		config.AllowOrigins = origins
	}
	config.AllowMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", obs.RequestIDHeader}
	return config
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
