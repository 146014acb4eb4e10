package handler

import (
	"net/http"

	"printshop/internal/metrics"
	"printshop/internal/middleware"
	"printshop/internal/service"
	"printshop/internal/utils"
	"printshop/internal/web"

	"github.com/gin-gonic/gin"
)

// RouterDeps collects what the HTTP layer needs from main
type RouterDeps struct {
	Auth         service.AuthService
	Jobs         service.PrintJobService
	JWT          *utils.JWTUtil
	Flashes      *web.FlashStore
	Metrics      *metrics.Metrics // optional
	DB           Pinger           // optional
	MaxUpload    int64
	CookieSecure bool
}

// NewRouter wires middleware, templates and every route
func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}
	router.Use(middleware.Session(deps.JWT))

	templates, err := web.Templates()
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(templates)
	router.MaxMultipartMemory = 8 << 20

	authHandler := NewAuthHandler(deps.Auth, deps.Flashes, deps.JWT, deps.CookieSecure)
	jobHandler := NewPrintJobHandler(deps.Jobs, deps.Auth, deps.Flashes, deps.MaxUpload, deps.CookieSecure)

	authHandler.RegisterAuthRoutes(router)
	jobHandler.RegisterPrintJobRoutes(router)

	if deps.DB != nil {
		router.GET("/health", Health(deps.DB))
	}
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	router.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "error.html", page(c, deps.Flashes, "Page not found", gin.H{
			"Message": "The page you asked for does not exist.",
		}))
	})
	return router, nil
}
