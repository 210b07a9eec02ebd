package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Freeeeeet/tutor_dashboard/internal/dashboard"
	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/Freeeeeet/tutor_dashboard/internal/report"
	"github.com/Freeeeeet/tutor_dashboard/internal/service"
)

// DashboardProvider источник снимков дашборда
type DashboardProvider interface {
	Dashboard(ctx context.Context, teacherID string) (*dashboard.Snapshot, error)
	PublicProfile(ctx context.Context, teacherID string) (*service.PublicProfile, error)
}

// SessionManager обмен токенов входа и проверка сессий
type SessionManager interface {
	ExchangeLoginToken(ctx context.Context, token string) (*service.Session, error)
	ParseSession(token string) (*model.SessionClaims, error)
}

type loginRequest struct {
	Token string `json:"token" form:"token" binding:"required"`
}

type sessionResponse struct {
	ID         string     `json:"id"`
	Role       model.Role `json:"role"`
	TelegramID int64      `json:"telegramId"`
	ExpiresAt  time.Time  `json:"expiresAt"`
}

type Handler struct {
	dashboards    DashboardProvider
	sessions      SessionManager
	secureCookies bool
	logger        *zap.Logger
}

func NewHandler(dashboards DashboardProvider, sessions SessionManager, secureCookies bool, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		dashboards:    dashboards,
		sessions:      sessions,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// Health отвечает для проверок живости
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Login обменивает токен из бота на сессионный cookie (POST с JSON телом)
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errBadRequest)
		return
	}

	session, ok := h.exchange(c, req.Token)
	if !ok {
		return
	}

	respondJSON(c, http.StatusOK, sessionResponse{
		ID:         session.Claims.ID,
		Role:       session.Claims.Role,
		TelegramID: session.Claims.TelegramID,
		ExpiresAt:  session.ExpiresAt,
	})
}

// LoginLink обрабатывает переход по ссылке из бота и перенаправляет на дашборд
func (h *Handler) LoginLink(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, errBadRequest)
		return
	}

	if _, ok := h.exchange(c, req.Token); !ok {
		return
	}

	c.Redirect(http.StatusSeeOther, "/api/dashboard")
}

func (h *Handler) exchange(c *gin.Context, token string) (*service.Session, bool) {
	session, err := h.sessions.ExchangeLoginToken(c.Request.Context(), token)
	if err != nil {
		h.logger.Info("Login token rejected",
			zap.String("request_id", requestIDFrom(c)),
			zap.Error(err))
		respondError(c, fromError(err))
		return nil, false
	}

	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, session.Token, maxAge, "/", "", h.secureCookies, true)
	return session, true
}

// Logout удаляет сессионный cookie
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", h.secureCookies, true)
	c.Status(http.StatusNoContent)
}

// Dashboard возвращает снимок дашборда текущего учителя
func (h *Handler) Dashboard(c *gin.Context) {
	snapshot, ok := h.snapshot(c)
	if !ok {
		return
	}
	respondJSON(c, http.StatusOK, snapshot)
}

// ReportPDF отдаёт отчёт в PDF
func (h *Handler) ReportPDF(c *gin.Context) {
	h.render(c, "application/pdf", report.PDF)
}

// WeekdayChart отдаёт гистограмму по дням недели
func (h *Handler) WeekdayChart(c *gin.Context) {
	h.render(c, "image/png", report.WeekdayChart)
}

// HourChart отдаёт гистограмму по часам
func (h *Handler) HourChart(c *gin.Context) {
	h.render(c, "image/png", report.HourChart)
}

// PublicProfile публичная страница учителя, доступна без входа
func (h *Handler) PublicProfile(c *gin.Context) {
	profile, err := h.dashboards.PublicProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respondJSON(c, http.StatusOK, profile)
}

func (h *Handler) render(c *gin.Context, contentType string, render func(*dashboard.Snapshot) ([]byte, error)) {
	snapshot, ok := h.snapshot(c)
	if !ok {
		return
	}

	data, err := render(snapshot)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, contentType, data)
}

func (h *Handler) snapshot(c *gin.Context) (*dashboard.Snapshot, bool) {
	claims := claimsFrom(c)
	if claims == nil {
		respondError(c, errUnauthorized)
		return nil, false
	}

	snapshot, err := h.dashboards.Dashboard(c.Request.Context(), claims.ID)
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return snapshot, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	apiErr := fromError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
		h.logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", requestIDFrom(c)),
			zap.Error(err))
	}
	respondError(c, apiErr)
}
