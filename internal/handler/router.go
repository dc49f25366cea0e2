package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	internalmiddleware "github.com/noah-isme/gradebook-api/internal/middleware"
	"github.com/noah-isme/gradebook-api/internal/service"
	"github.com/noah-isme/gradebook-api/pkg/config"
	"github.com/noah-isme/gradebook-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/gradebook-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/gradebook-api/pkg/middleware/requestid"
)

// RouterDeps collects what NewRouter mounts.
type RouterDeps struct {
	Config      *config.Config
	Logger      *zap.Logger
	Metrics     *service.MetricsService
	GradeConfig *GradeConfigHandler
	Grades      *GradeHandler
	Students    *StudentHandler
	System      *MetricsHandler
}

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(d RouterDeps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(d.Logger))
	r.Use(corsmiddleware.New(d.Config.CORS.AllowedOrigins))
	if d.Config.Metrics.Enabled {
		r.Use(internalmiddleware.Metrics(d.Metrics, d.Config.Metrics.Path, "/health", "/ready"))
	}

	r.GET("/health", d.System.Health)
	r.GET("/ready", d.System.Ready)
	if d.Config.Metrics.Enabled {
		r.GET(d.Config.Metrics.Path, d.System.Prometheus)
	}
	if d.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(d.Config.APIPrefix)

	grades := api.Group("/grades")
	grades.GET("/config", d.GradeConfig.Get)
	grades.PUT("/config", d.GradeConfig.Update)
	grades.POST("/config/normalize", d.GradeConfig.Normalize)
	grades.POST("/compute", d.Grades.Compute)

	students := api.Group("/students")
	students.GET("", d.Students.List)
	students.GET("/:id", d.Students.Get)
	students.GET("/:id/grades", d.Grades.Get)
	students.PUT("/:id/grades", d.Grades.Replace)
	students.PATCH("/:id/grades", d.Grades.Edit)
	students.POST("/:id/grades/seed", d.Grades.Seed)
	students.GET("/:id/grades/semesters/:number", d.Grades.Semester)
	students.GET("/:id/grades/export", d.Grades.Export)

	api.GET("/system/metrics", d.System.Summary)

	return r
}
