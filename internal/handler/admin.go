package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"messmate/internal/attendance"
	"messmate/internal/qr"
	"messmate/internal/user"
)

type menuItemRequest struct {
	Day      string `json:"day" binding:"required"`
	MealType string `json:"meal_type" binding:"required"`
	Items    string `json:"items" binding:"required"`
}

// AddMenuItem handles POST /v1/admin/menu.
func (h *Handler) AddMenuItem(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.menus.Add(c.Request.Context(), req.Day, req.MealType, req.Items, claims(c).Email)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateMenuItem handles PUT /v1/admin/menu/:id.
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.menus.Update(c.Request.Context(), c.Param("id"), req.Day, req.MealType, req.Items); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// DeleteMenuItem handles DELETE /v1/admin/menu/:id.
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	if err := h.menus.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type issueQRRequest struct {
	MealType string `json:"meal_type"`
}

// IssueQR handles POST /v1/admin/qr: issues today's attendance code.
func (h *Handler) IssueQR(c *gin.Context) {
	var req issueQRRequest
	_ = c.ShouldBindJSON(&req) // body optional; meal type defaults to general
	if req.MealType == "" {
		req.MealType = "general"
	}

	code, err := h.codes.Issue(c.Request.Context(), claims(c).Email, req.MealType)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, code)
}

// QRImage handles GET /v1/admin/qr/image: today's code as a PNG.
func (h *Handler) QRImage(c *gin.Context) {
	code, err := h.codes.Active(c.Request.Context(), time.Now().Format(qr.DateLayout))
	if err != nil {
		respondErr(c, err)
		return
	}

	png, err := qr.PNG(code.Value, 256)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// ListAttendance handles GET /v1/admin/attendance.
func (h *Handler) ListAttendance(c *gin.Context) {
	limit, offset := pagination(c)
	records, err := h.att.ListAll(c.Request.Context(), c.Query("user_id"), limit, offset)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendance": records})
}

// ExportAttendance handles GET /v1/admin/attendance/export: the CSV download.
func (h *Handler) ExportAttendance(c *gin.Context) {
	filename, data, err := h.att.ExportCSV(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ListUsers handles GET /v1/admin/users.
func (h *Handler) ListUsers(c *gin.Context) {
	accounts, err := h.users.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": accounts})
}

type createUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

// CreateUser handles POST /v1/admin/users.
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Role == "" {
		req.Role = user.RoleUser
	}

	acc, err := h.users.Register(c.Request.Context(), req.Email, req.Name, req.Password, req.Role, claims(c).Email)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, acc)
}

// DeleteUser handles DELETE /v1/admin/users/:id. Admin accounts are refused.
func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListLeaves handles GET /v1/admin/leaves.
func (h *Handler) ListLeaves(c *gin.Context) {
	requests, err := h.leaves.List(c.Request.Context(), c.Query("user_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaves": requests})
}

type respondRequest struct {
	Status   string `json:"status" binding:"required"`
	Response string `json:"response"`
}

// RespondLeave handles POST /v1/admin/leaves/:id/respond.
func (h *Handler) RespondLeave(c *gin.Context) {
	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.leaves.Respond(c.Request.Context(), c.Param("id"), req.Status, claims(c).Email); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

// ListFeedback handles GET /v1/admin/feedback.
func (h *Handler) ListFeedback(c *gin.Context) {
	entries, err := h.fb.List(c.Request.Context(), c.Query("user_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": entries})
}

// RespondFeedback handles POST /v1/admin/feedback/:id/respond.
func (h *Handler) RespondFeedback(c *gin.Context) {
	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.fb.Respond(c.Request.Context(), c.Param("id"), req.Status, req.Response, claims(c).Email); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

// ListPayments handles GET /v1/admin/payments.
func (h *Handler) ListPayments(c *gin.Context) {
	payments, err := h.pays.List(c.Request.Context(), c.Query("user_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// VerifyPayment handles POST /v1/admin/payments/:id/verify.
func (h *Handler) VerifyPayment(c *gin.Context) {
	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.pays.Verify(c.Request.Context(), c.Param("id"), req.Status, claims(c).Email); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

// Stats handles GET /v1/admin/stats: the admin dashboard numbers.
func (h *Handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	uniqueUsers, err := h.att.CountDistinctUsers(ctx)
	if err != nil {
		respondErr(c, err)
		return
	}
	pendingLeaves, err := h.leaves.CountPending(ctx)
	if err != nil {
		respondErr(c, err)
		return
	}
	pendingFeedback, err := h.fb.CountPending(ctx)
	if err != nil {
		respondErr(c, err)
		return
	}
	payStats, err := h.pays.GetStats(ctx)
	if err != nil {
		respondErr(c, err)
		return
	}

	today := time.Now().Format(attendance.DateLayout)
	todayCount, err := h.counter.DayCount(ctx, today)
	if err != nil {
		// Redis being cold is not worth a 500 on the dashboard.
		todayCount = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"unique_attendees": uniqueUsers,
		"pending_leaves":   pendingLeaves,
		"pending_feedback": pendingFeedback,
		"pending_payments": payStats.PendingCount,
		"total_revenue":    payStats.TotalRevenue,
		"monthly_revenue":  payStats.MonthlyRevenue,
		"today_attendance": todayCount,
	})
}
