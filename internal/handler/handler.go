package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"messmate/internal/attendance"
	"messmate/internal/auth"
	"messmate/internal/cloudinary"
	"messmate/internal/config"
	"messmate/internal/feedback"
	"messmate/internal/leave"
	"messmate/internal/menu"
	"messmate/internal/payment"
	"messmate/internal/qr"
	"messmate/internal/queue"
	"messmate/internal/stats"
	"messmate/internal/user"
)

// Handler carries the wired services for all HTTP routes.
type Handler struct {
	cfg     config.App
	users   *user.Service
	menus   *menu.Service
	att     *attendance.Service
	codes   *qr.Service
	leaves  *leave.Service
	fb      *feedback.Service
	pays    *payment.Service
	q       queue.Queue
	counter *stats.Counter
	cdn     *cloudinary.Client // nil if Cloudinary not configured
}

// New builds a handler.
func New(cfg config.App, users *user.Service, menus *menu.Service, att *attendance.Service,
	codes *qr.Service, leaves *leave.Service, fb *feedback.Service, pays *payment.Service,
	q queue.Queue, counter *stats.Counter, cdn *cloudinary.Client) *Handler {
	return &Handler{
		cfg:     cfg,
		users:   users,
		menus:   menus,
		att:     att,
		codes:   codes,
		leaves:  leaves,
		fb:      fb,
		pays:    pays,
		q:       q,
		counter: counter,
		cdn:     cdn,
	}
}

// claims pulls authenticated claims; routes behind UserAuth always have them.
func claims(c *gin.Context) auth.Claims {
	cl, _ := auth.FromContext(c)
	return cl
}

// respondErr maps domain errors to HTTP statuses.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, attendance.ErrAlreadyMarked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrAdminProtected):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrBadCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrNotFound),
		errors.Is(err, menu.ErrNotFound),
		errors.Is(err, leave.ErrNotFound),
		errors.Is(err, feedback.ErrNotFound),
		errors.Is(err, payment.ErrNotFound),
		errors.Is(err, qr.ErrNoActiveCode):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, qr.ErrUnknownCode),
		errors.Is(err, qr.ErrNotToday),
		errors.Is(err, leave.ErrBadStatus),
		errors.Is(err, feedback.ErrBadStatus),
		errors.Is(err, feedback.ErrBadRating),
		errors.Is(err, payment.ErrBadStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
