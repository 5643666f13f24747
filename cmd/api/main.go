package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"messmate/internal/attendance"
	"messmate/internal/auth"
	"messmate/internal/cloudinary"
	"messmate/internal/config"
	"messmate/internal/feedback"
	"messmate/internal/handler"
	"messmate/internal/httpmiddleware"
	"messmate/internal/leave"
	"messmate/internal/menu"
	"messmate/internal/payment"
	"messmate/internal/qr"
	"messmate/internal/queue"
	"messmate/internal/stats"
	"messmate/internal/store"
	"messmate/internal/user"
)

func main() {
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	// A nil handle means the connection string itself is unusable;
	// a ping failure just means the database is not up yet.
	db, err := store.NewDB(cfg.DatabaseURL)
	if db == nil {
		return fmt.Errorf("db open failed: %w", err)
	}
	if err != nil {
		log.Printf("warning: db not reachable: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		log.Printf("warning: migrate failed: %v", err)
	}

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "mess:attendance")
	}

	// Cloudinary client (nil when not configured)
	var cdnClient *cloudinary.Client
	if cfg.CloudinaryCloudName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		cdnClient = cloudinary.New(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		log.Println("Cloudinary configured:", cfg.CloudinaryCloudName)
	} else {
		log.Println("Cloudinary not configured (CLOUDINARY_CLOUD_NAME / API_KEY / API_SECRET not set)")
	}

	policy := user.NewPolicy(cfg.AdminEmails)
	users := user.NewService(user.NewRepository(db.Client), policy)
	menus := menu.NewService(menu.NewRepository(db.Client))
	codes := qr.NewService(qr.NewRepository(db.Client))
	leaves := leave.NewService(leave.NewRepository(db.Client))
	fb := feedback.NewService(feedback.NewRepository(db.Client))
	pays := payment.NewService(payment.NewRepository(db.Client))
	att := attendance.NewService(attendance.NewRepository(db.Client), codes, leaves, cfg.CycleDays, cfg.MealRate)
	counter := stats.NewCounter(redisClient.Client)

	h := handler.New(cfg, users, menus, att, codes, leaves, fb, pays, q, counter, cdnClient)

	r := gin.New()

	// Recovery middleware
	r.Use(gin.Recovery())

	// Custom logger
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))

	// CORS middleware
	r.Use(corsMiddleware())

	// Security headers
	r.Use(securityHeaders())

	// Rate limiting
	r.Use(httpmiddleware.NewSimpleTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin).GinMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/healthz", func(c *gin.Context) {
		redisHealthy := redisClient.Healthy(c.Request.Context())
		dbHealthy := db.Ping(c.Request.Context()) == nil
		status := http.StatusOK
		if !redisHealthy || !dbHealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "redis": redisHealthy, "db": dbHealthy})
	})

	r.POST("/v1/auth/register", h.Register)
	r.POST("/v1/auth/login", h.Login)

	authed := r.Group("/v1", auth.UserAuth(cfg.JWTSigningKey, cfg.JWTIssuer))
	{
		authed.GET("/menu", h.WeeklyMenu)
		authed.GET("/menu/today", h.TodayMenu)
		authed.GET("/qr/today", h.TodayQR)

		authed.POST("/attendance", h.MarkAttendance)
		authed.GET("/attendance", h.MyAttendance)
		authed.GET("/attendance/summary", h.AttendanceSummary)

		authed.POST("/leaves", h.SubmitLeave)
		authed.GET("/leaves", h.MyLeaves)

		authed.POST("/feedback", h.SubmitFeedback)
		authed.GET("/feedback", h.MyFeedback)

		authed.POST("/payments", h.SubmitPayment)
		authed.GET("/payments", h.MyPayments)
		authed.POST("/payments/proof", h.UploadProof)
	}

	admin := authed.Group("/admin", auth.RequireAdmin())
	{
		admin.POST("/menu", h.AddMenuItem)
		admin.PUT("/menu/:id", h.UpdateMenuItem)
		admin.DELETE("/menu/:id", h.DeleteMenuItem)

		admin.POST("/qr", h.IssueQR)
		admin.GET("/qr/image", h.QRImage)

		admin.GET("/attendance", h.ListAttendance)
		admin.GET("/attendance/export", h.ExportAttendance)

		admin.GET("/users", h.ListUsers)
		admin.POST("/users", h.CreateUser)
		admin.DELETE("/users/:id", h.DeleteUser)

		admin.GET("/leaves", h.ListLeaves)
		admin.POST("/leaves/:id/respond", h.RespondLeave)

		admin.GET("/feedback", h.ListFeedback)
		admin.POST("/feedback/:id/respond", h.RespondFeedback)

		admin.GET("/payments", h.ListPayments)
		admin.POST("/payments/:id/verify", h.VerifyPayment)

		admin.GET("/stats", h.Stats)
	}

	// Graceful shutdown
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}

// CORS middleware for browser requests
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Security headers middleware
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Only add HSTS in production
		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
