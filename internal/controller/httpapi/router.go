package httpapi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Freeeeeet/tutor_dashboard/internal/service"
)

// NewRouter собирает gin engine со всеми маршрутами
func NewRouter(h *Handler, sessions SessionManager, metrics *service.MetricsService, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery(), RequestID(), Logger(logger), Metrics(metrics))

	router.NoRoute(func(c *gin.Context) { respondError(c, errRouteNotFound) })
	router.NoMethod(func(c *gin.Context) { respondError(c, errMethodNotAllowed) })

	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	auth := router.Group("/auth")
	auth.POST("/telegram", h.Login)
	auth.GET("/telegram", h.LoginLink)
	auth.POST("/logout", h.Logout)

	api := router.Group("/api")
	api.GET("/teachers/:id", h.PublicProfile)

	teacher := api.Group("/dashboard", Session(sessions), RequireTeacher())
	teacher.GET("", h.Dashboard)
	teacher.GET("/report.pdf", h.ReportPDF)
	teacher.GET("/charts/weekdays.png", h.WeekdayChart)
	teacher.GET("/charts/hours.png", h.HourChart)

	return router
}
