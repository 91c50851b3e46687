package router

import (
	"net/http"

	"employee-management/internal/apperror"
	"employee-management/internal/config"
	"employee-management/internal/db"
	"employee-management/internal/handlers"
	"employee-management/internal/middleware"
	"employee-management/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// New builds the engine with middleware and routes.
func New(cfg config.AppConfig, store db.EmployeeStore, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestLogger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.ErrorHandler(logger),
	)
	r.NoRoute(middleware.NotFound)
	Setup(r, cfg, store, logger)
	return r
}

func Setup(r *gin.Engine, cfg config.AppConfig, store db.EmployeeStore, logger *zap.Logger) {
	v := validation.New(validation.Rules{StrictDepartments: cfg.StrictDepartments})
	eh := handlers.NewEmployeeHandler(store, v, logger, cfg.EmptyListNotFound)

	// health (also verifies store connectivity)
	r.GET("/health", func(c *gin.Context) {
		if err := store.Ping(c.Request.Context()); err != nil {
			_ = c.Error(apperror.NewInternal("", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/create", eh.CreateEmployee)
	r.GET("/all", eh.ListEmployees)
	r.PUT("/edit", eh.EditEmployee)
	r.DELETE("/delete/:employeeId", eh.DeleteEmployee)
}
