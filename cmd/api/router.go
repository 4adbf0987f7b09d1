package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/academia-dev/academia-api/internal/handler"
	"github.com/academia-dev/academia-api/internal/middleware"
	"github.com/academia-dev/academia-api/internal/models"
	"github.com/academia-dev/academia-api/internal/service"
	"github.com/academia-dev/academia-api/pkg/config"
	"github.com/academia-dev/academia-api/pkg/logger"
	corsmiddleware "github.com/academia-dev/academia-api/pkg/middleware/cors"
	reqidmiddleware "github.com/academia-dev/academia-api/pkg/middleware/requestid"
)

type routerHandlers struct {
	auth     *handler.AuthHandler
	courses  *handler.CourseHandler
	modules  *handler.ModuleHandler
	cells    *handler.CellHandler
	students *handler.StudentHandler
	reports  *handler.ReportHandler
	metrics  *handler.MetricsHandler
}

func newRouter(cfg *config.Config, logr *zap.Logger, metrics *service.MetricsService, h routerHandlers, authSvc *service.AuthService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", h.metrics.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", h.metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/register", h.auth.Register)
	auth.POST("/login", h.auth.Login)

	// Download links carry their own signed token, so the JWT gate is skipped.
	api.GET("/relatorios/download/:token", h.reports.Download)

	authenticated := api.Group("", middleware.JWT(authSvc))
	authenticated.GET("/auth/me", h.auth.Me)

	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleInstructor)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	cursos := authenticated.Group("/cursos")
	cursos.GET("", h.courses.List)
	cursos.GET("/:id", h.courses.Get)
	cursos.POST("", staff, h.courses.Create)
	cursos.PUT("/:id", staff, h.courses.Update)
	cursos.DELETE("/:id", adminOnly, h.courses.Delete)

	modulos := authenticated.Group("/modulos")
	modulos.GET("", h.modules.List)
	modulos.GET("/:id", h.modules.Get)
	modulos.PUT("/:id/habilitar", staff, h.modules.Enable)
	modulos.PUT("/:id/concluir", staff, h.modules.Complete)

	celulas := authenticated.Group("/celulas")
	celulas.GET("", h.cells.List)
	celulas.GET("/modulo/:moduloId", h.cells.ListByModule)
	celulas.GET("/:id", h.cells.Get)
	celulas.PUT("/:id", staff, h.cells.Update)
	celulas.GET("/:id/presencas", h.cells.ListAttendances)
	celulas.POST("/:id/presencas", staff, h.cells.RegisterAttendance)

	alunos := authenticated.Group("/alunos")
	alunos.GET("", h.students.List)
	alunos.GET("/:id", h.students.Get)
	alunos.POST("", staff, h.students.Create)
	alunos.PUT("/:id", staff, h.students.Update)
	alunos.DELETE("/:id", adminOnly, h.students.Delete)
	alunos.PUT("/:id/progresso", staff, h.students.Progress)

	relatorios := authenticated.Group("/relatorios")
	relatorios.POST("", staff, h.reports.Create)
	relatorios.GET("/:id", h.reports.Status)

	return r
}
