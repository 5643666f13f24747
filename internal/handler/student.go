package handler

import (
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"messmate/internal/cloudinary"
	"messmate/internal/qr"
	"messmate/internal/queue"
)

// WeeklyMenu handles GET /v1/menu.
func (h *Handler) WeeklyMenu(c *gin.Context) {
	items, err := h.menus.Weekly(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": items})
}

// TodayMenu handles GET /v1/menu/today.
func (h *Handler) TodayMenu(c *gin.Context) {
	items, err := h.menus.Today(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"day": time.Now().Weekday().String(), "menu": items})
}

// TodayQR handles GET /v1/qr/today: reports whether a code is active today.
// The value itself is only in the scanned image, not in this response.
func (h *Handler) TodayQR(c *gin.Context) {
	code, err := h.codes.Active(c.Request.Context(), time.Now().Format(qr.DateLayout))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":        code.ID,
		"date":      code.Date,
		"meal_type": code.MealType,
	})
}

type markRequest struct {
	QRValue string `json:"qr_value" binding:"required"`
}

// MarkAttendance handles POST /v1/attendance.
func (h *Handler) MarkAttendance(c *gin.Context) {
	var req markRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cl := claims(c)
	rec, err := h.att.Mark(c.Request.Context(), cl.Subject, cl.Email, cl.Name, req.QRValue)
	if err != nil {
		respondErr(c, err)
		return
	}

	if err := h.q.Publish(c.Request.Context(), queue.Message{
		Type: "attendance",
		Body: []byte(rec.ID + "|" + rec.Date),
	}); err != nil {
		log.Printf("queue publish failed: %v", err)
	}

	c.JSON(http.StatusCreated, rec)
}

// MyAttendance handles GET /v1/attendance.
func (h *Handler) MyAttendance(c *gin.Context) {
	limit, offset := pagination(c)
	records, err := h.att.History(c.Request.Context(), claims(c).Subject, limit, offset)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendance": records})
}

// AttendanceSummary handles GET /v1/attendance/summary: current cycle and bill.
func (h *Handler) AttendanceSummary(c *gin.Context) {
	summary, err := h.att.Summarize(c.Request.Context(), claims(c).Subject)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type leaveRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	MealType  string `json:"meal_type" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

// SubmitLeave handles POST /v1/leaves.
func (h *Handler) SubmitLeave(c *gin.Context) {
	var req leaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cl := claims(c)
	lr, err := h.leaves.Submit(c.Request.Context(), cl.Subject, cl.Email, req.StartDate, req.EndDate, req.MealType, req.Reason)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, lr)
}

// MyLeaves handles GET /v1/leaves.
func (h *Handler) MyLeaves(c *gin.Context) {
	requests, err := h.leaves.List(c.Request.Context(), claims(c).Subject)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaves": requests})
}

type feedbackRequest struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
}

// SubmitFeedback handles POST /v1/feedback.
func (h *Handler) SubmitFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cl := claims(c)
	entry, err := h.fb.Submit(c.Request.Context(), cl.Subject, cl.Email, req.Subject, req.Message, req.Rating)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// MyFeedback handles GET /v1/feedback.
func (h *Handler) MyFeedback(c *gin.Context) {
	entries, err := h.fb.List(c.Request.Context(), claims(c).Subject)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": entries})
}

type paymentRequest struct {
	Amount        int    `json:"amount" binding:"required"`
	Month         string `json:"month"`
	TransactionID string `json:"transaction_id"`
	Method        string `json:"method"`
	ProofURL      string `json:"proof_url"`
}

// SubmitPayment handles POST /v1/payments.
func (h *Handler) SubmitPayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cl := claims(c)
	p, err := h.pays.Submit(c.Request.Context(), cl.Subject, cl.Email, req.Amount, req.Month, req.TransactionID, req.Method, req.ProofURL)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// MyPayments handles GET /v1/payments.
func (h *Handler) MyPayments(c *gin.Context) {
	payments, err := h.pays.List(c.Request.Context(), claims(c).Subject)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// UploadProof handles POST /v1/payments/proof — uploads a payment proof
// image (base64 JSON body or multipart file) and returns its URL.
func (h *Handler) UploadProof(c *gin.Context) {
	if h.cdn == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}

	var result *cloudinary.UploadResult
	var err error

	switch {
	case strings.Contains(c.ContentType(), "multipart/form-data"):
		file, header, ferr := c.Request.FormFile("file")
		if ferr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file field required"})
			return
		}
		defer file.Close()
		data, ferr := io.ReadAll(file)
		if ferr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "read file failed"})
			return
		}
		result, err = h.cdn.UploadBytes(c.Request.Context(), data, header.Filename)

	default:
		var body struct {
			Data string `json:"data" binding:"required"`
		}
		if berr := c.ShouldBindJSON(&body); berr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "provide {\"data\": \"<base64 data URL>\"}"})
			return
		}
		result, err = h.cdn.UploadBase64(c.Request.Context(), body.Data)
	}

	if err != nil {
		log.Printf("cloudinary upload failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "image upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":       result.SecureURL,
		"public_id": result.PublicID,
		"bytes":     result.Bytes,
	})
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, offset = 50, 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	return limit, offset
}
