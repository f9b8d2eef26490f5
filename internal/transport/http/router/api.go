// Package router assembles the gin engine, middleware chain and routes.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"motomap-api/internal/core/auth"
	"motomap-api/internal/core/cache"
	"motomap-api/internal/core/config"
	"motomap-api/internal/ml"
	"motomap-api/internal/service"
	"motomap-api/internal/transport/http/handler"
	"motomap-api/internal/transport/http/middleware"
	"motomap-api/internal/transport/http/response"
)

type Deps struct {
	Log      *zap.Logger
	DB       *gorm.DB
	JWT      *auth.JWTer
	Throttle *cache.Throttle
	Cfg      *config.Config
}

func NewEngine(d Deps) *gin.Engine {
	if d.Cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	response.RegisterTagNames()

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RateLimit(rate.Limit(d.Cfg.RateLimit.RPS), d.Cfg.RateLimit.Burst),
		middleware.RateLimitPerIP(rate.Limit(d.Cfg.RateLimit.PerIPRPS), d.Cfg.RateLimit.PerIPBurst),
		middleware.ConcurrencyLimit(d.Cfg.RateLimit.Concurrency),
		middleware.MaxBodyBytes(1<<20),
		middleware.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		middleware.Metrics(),
		middleware.AccessLog(d.Log),
		cors.Default(),
	)

	authSvc := service.NewAuthService(d.DB, d.JWT, d.Throttle,
		d.Cfg.Auth.MaxFailures, time.Duration(d.Cfg.Auth.WindowMinutes)*time.Minute)
	yardSvc := service.NewYardService(d.DB)
	readerSvc := service.NewReaderService(d.DB)
	motoSvc := service.NewMotorcycleService(d.DB)

	authH := handler.NewAuthHandler(authSvc)
	yardH := handler.NewYardHandler(yardSvc)
	readerH := handler.NewReaderHandler(readerSvc, motoSvc)
	motoH := handler.NewMotorcycleHandler(motoSvc)
	mlH := handler.NewMLHandler(ml.NewPredictor())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.POST("/auth/login", authH.Login)

	v1 := api.Group("/v1")
	v1.POST("/ml/predict", mlH.Predict)

	authed := v1.Group("", middleware.AuthJWT(d.JWT, ""))
	{
		authed.GET("/yards", yardH.List)
		authed.GET("/yards/:id", yardH.Get)
		authed.GET("/readers", readerH.List)
		authed.GET("/readers/:id", readerH.Get)
		authed.GET("/motorcycles", motoH.List)
		authed.GET("/motorcycles/:id", motoH.Get)
	}

	admin := v1.Group("", middleware.AuthJWT(d.JWT, "Admin"))
	{
		admin.POST("/yards", yardH.Create)
		admin.PUT("/yards/:id", yardH.Update)
		admin.DELETE("/yards/:id", yardH.Delete)
		admin.POST("/readers", readerH.Create)
		admin.PUT("/readers/:id", readerH.Update)
		admin.DELETE("/readers/:id", readerH.Delete)
		admin.POST("/readers/:id/sightings", readerH.RecordSighting)
		admin.POST("/motorcycles", motoH.Create)
		admin.PUT("/motorcycles/:id", motoH.Update)
		admin.DELETE("/motorcycles/:id", motoH.Delete)
	}

	return r
}
