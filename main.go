// @title           Gram Panchayat Portal API
// @version         1.0
// @description     Gram Panchayat administrative portal backend - estimates, enquiry reports, service availability and annual plans.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @schemes http https
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"panchayat/handlers"
	"panchayat/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var cronRunning int32

func CORSConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{
		"http://localhost:3000",
		"http://localhost:8080",
		"http://localhost:9000",
	}
	if origin := os.Getenv("PORTAL_ORIGIN"); origin != "" {
		corsConfig.AllowOrigins = append(corsConfig.AllowOrigins, origin)
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding", "X-XSRF-TOKEN",
		"Accept", "Origin", "X-Requested-With", "Authorization", "User-Agent",
		"Cache-Control", "Referer",
		"Access-Control-Request-Method", "Access-Control-Request-Headers",
	}
	corsConfig.AllowMethods = []string{
		"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD", "PATCH",
	}
	corsConfig.ExposeHeaders = []string{
		"Content-Length", "Authorization", "Content-Type", "Content-Disposition",
	}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}

func safeGo(
	ctx context.Context,
	wg *sync.WaitGroup,
	name string,
	fn func(context.Context) error,
	cronLogger *log.Logger,
) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
				if cronLogger != nil {
					cronLogger.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
				}
			}
		}()

		if err := fn(ctx); err != nil {
			log.Printf("%s failed: %v", name, err)
			if cronLogger != nil {
				cronLogger.Printf("%s failed: %v", name, err)
			}
		} else {
			log.Printf("%s completed successfully", name)
		}
	}()
}

func main() {
	db := storage.InitDB()
	gdb := storage.InitGormDB()

	db.SetMaxOpenConns(15)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Nightly maintenance: session cleanup plus topping up the rolling
	// availability window for both bookable services.
	c := cron.New(
		cron.WithLogger(cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))),
	)

	cronLogFile, err := os.OpenFile("cron_errors.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Failed to open cron error log file: %v", err)
	}
	cronLogger := log.New(cronLogFile, "CRON_ERROR: ", log.LstdFlags)

	_, err = c.AddFunc("30 0 * * *", func() {
		if !atomic.CompareAndSwapInt32(&cronRunning, 0, 1) {
			log.Println("Previous cron still running. Skipping this run.")
			return
		}
		defer atomic.StoreInt32(&cronRunning, 0)

		log.Println("Starting nightly maintenance cron job")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		var wg sync.WaitGroup

		safeGo(ctx, &wg, "CleanupExpiredSessions", func(ctx context.Context) error {
			return storage.CleanupExpiredSessions(db)
		}, cronLogger)

		safeGo(ctx, &wg, "TopUpAvailabilityWindows", func(ctx context.Context) error {
			handlers.TopUpAvailabilityWindows(db)
			return nil
		}, cronLogger)

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			log.Println("All cron jobs finished")
		case <-ctx.Done():
			log.Println("Cron timeout reached, jobs cancelled")
			if cronLogger != nil {
				cronLogger.Println("Cron timeout reached, jobs cancelled")
			}
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule nightly maintenance cron job: %v", err)
	}

	c.Start()

	r := gin.Default()
	r.Use(cors.New(CORSConfig()))

	// Authentication
	r.POST("/api/login", handlers.LoginHandler(db))
	r.POST("/api/logout", handlers.LogoutHandler(db))
	r.GET("/api/validate-session", handlers.ValidateSessionHandler(db))

	// Activity logs
	r.GET("/api/logs", handlers.GetActivityLogsHandler(db))
	r.GET("/api/log/search", handlers.SearchActivityLogsHandler(db))

	// Development works: schedule of rates, estimate drafts, templates
	r.GET("/api/development-works/schedule-rates", handlers.GetScheduleRates(db))
	r.POST("/api/development-works/estimates", handlers.CreateEstimate(db))
	r.POST("/api/development-works/estimates/:id/items", handlers.AddEstimateWorkItem(db))
	r.PUT("/api/development-works/estimates/:id/items/:item_id", handlers.UpdateEstimateWorkItem())
	r.DELETE("/api/development-works/estimates/:id/items/:item_id", handlers.DeleteEstimateWorkItem())
	r.GET("/api/development-works/estimates/:id/breakdown", handlers.GetEstimateBreakdown())
	r.PUT("/api/development-works/estimates/:id/charges", handlers.UpdateEstimateCharges())
	r.POST("/api/development-works/estimates/:id/apply-template", handlers.ApplyEstimateTemplate(gdb))
	r.POST("/api/development-works/estimates/:id/save-as-template", handlers.SaveEstimateAsTemplate(db, gdb))
	r.POST("/api/development-works/estimates/:id/save", handlers.SaveEstimate(db))
	r.GET("/api/development-works/estimates/:id/pdf", handlers.GenerateDPRPdf())
	r.GET("/api/development-works/estimate-templates", handlers.GetEstimateTemplates(gdb))
	r.POST("/api/development-works/estimate-templates", handlers.CreateEstimateTemplate(db, gdb))

	// Reports
	r.GET("/api/reports/applications", handlers.GetApplicationsReport(db))
	r.GET("/api/reports/budget", handlers.GetBudgetReport(db))
	r.GET("/api/reports/expenditure", handlers.GetExpenditureReport(db))
	r.GET("/api/reports/earnest-money", handlers.GetEarnestMoneyReport(db))
	r.GET("/api/reports/technical-compliance", handlers.GetTechnicalComplianceReport(db))
	r.GET("/api/reports/vendor-participation", handlers.GetVendorParticipationReport(db))
	r.GET("/api/reports/performance", handlers.GetPerformanceReport(db))

	// Enquiry wizard drafts and reports
	r.POST("/api/enquiry/:form_type/drafts", handlers.CreateEnquiryDraft(db))
	r.GET("/api/enquiry/drafts/:id", handlers.GetEnquiryDraft())
	r.PUT("/api/enquiry/drafts/:id", handlers.UpdateEnquiryDraft())
	r.PUT("/api/enquiry/drafts/:id/next", handlers.EnquiryDraftNextStep())
	r.PUT("/api/enquiry/drafts/:id/previous", handlers.EnquiryDraftPreviousStep())
	r.POST("/api/enquiry/drafts/:id/submit", handlers.SubmitEnquiryDraft(db))
	r.POST("/api/enquiry-reports", handlers.PostEnquiryReport(db))
	r.GET("/api/enquiry-reports", handlers.GetEnquiryReports(db))
	r.GET("/api/enquiry-reports/:ack/qr", handlers.GenerateAcknowledgementQR(db))

	// Service availability admin panel
	r.GET("/api/admin/availability", handlers.GetServiceAvailability(db))
	r.POST("/api/admin/availability", handlers.CreateServiceAvailability(db))
	r.PUT("/api/admin/availability/:id", handlers.UpdateServiceAvailability(db))
	r.DELETE("/api/admin/availability/:id", handlers.DeleteServiceAvailability(db))
	r.POST("/api/admin/availability/bulk", handlers.BulkGenerateAvailability(db))
	r.GET("/api/admin/availability/export", handlers.ExportAvailabilityCSV(db))
	r.GET("/api/admin/service-fees", handlers.GetServiceFees(db))
	r.PUT("/api/admin/service-fees", handlers.UpdateServiceFees(db))

	// District annual plan
	r.GET("/api/annual-plan/blocks", handlers.GetAnnualPlanBlocks())
	r.GET("/api/annual-plan/export", handlers.ExportAnnualPlan())

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := os.Getenv("PORT")
	if port == "" {
		port = "9000"
	}
	portInt, err := strconv.Atoi(port)
	if err != nil {
		log.Fatalf("Invalid PORT environment variable: %s. Must be a number.", port)
	}
	if portInt < 0 || portInt > 65535 {
		log.Fatalf("Invalid PORT: %d. Must be between 0 and 65535.", portInt)
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
