package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/seekers-automation/mes-hr-backend-go/internal/config"
	appHTTP "github.com/seekers-automation/mes-hr-backend-go/internal/handler/http"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/cron"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/database"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/email"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/jwt"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/oauth"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/sse"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/storage"
	"github.com/seekers-automation/mes-hr-backend-go/internal/repository/postgresql"
	adminService "github.com/seekers-automation/mes-hr-backend-go/internal/service/admin"
	attendanceService "github.com/seekers-automation/mes-hr-backend-go/internal/service/attendance"
	auditService "github.com/seekers-automation/mes-hr-backend-go/internal/service/audit"
	authService "github.com/seekers-automation/mes-hr-backend-go/internal/service/auth"
	broadcastService "github.com/seekers-automation/mes-hr-backend-go/internal/service/broadcast"
	documentService "github.com/seekers-automation/mes-hr-backend-go/internal/service/document"
	holidayService "github.com/seekers-automation/mes-hr-backend-go/internal/service/holiday"
	leaveService "github.com/seekers-automation/mes-hr-backend-go/internal/service/leave"
	notificationService "github.com/seekers-automation/mes-hr-backend-go/internal/service/notification"
	profileService "github.com/seekers-automation/mes-hr-backend-go/internal/service/profile"
	reportService "github.com/seekers-automation/mes-hr-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	loc, err := time.LoadLocation(cfg.Office.Timezone)
	if err != nil {
		log.Fatal("Invalid office timezone: ", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	broadcastRepo := postgresql.NewBroadcastRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	settingRepo := postgresql.NewNotificationSettingRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)
	documentRepo := postgresql.NewDocumentRepository(db)
	jobRunStore := postgresql.NewJobRunStore(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	googleService := oauth.NewGoogleService(
		cfg.OAuth2Google.ClientID,
		cfg.OAuth2Google.ClientSecret,
		cfg.OAuth2Google.RedirectURL,
		cfg.OAuth2Google.Scopes,
	)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage: ", err)
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service: ", err)
	}

	hub := sse.NewHub()
	dispatcher := notificationService.NewDispatcher(
		settingRepo,
		emailService,
		hub,
		cfg.Office.AlertEmail,
		notificationService.Config{},
	)

	auditor := auditService.NewAuditService(auditRepo)

	authSvc := authService.NewAuthService(userRepo, jwtService, googleService, dispatcher, auditor, cfg.App.FrontendURL, nil)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		userRepo,
		dispatcher,
		auditor,
		attendanceService.Office{
			Latitude:  cfg.Office.Latitude,
			Longitude: cfg.Office.Longitude,
			RadiusKM:  cfg.Office.RadiusKM,
		},
		loc,
		nil,
	)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, userRepo, dispatcher, auditor)
	adminSvc := adminService.NewAdminService(userRepo, dispatcher, auditor)
	broadcastSvc := broadcastService.NewBroadcastService(broadcastRepo, userRepo, dispatcher, auditor, nil)
	holidaySvc := holidayService.NewHolidayService(holidayRepo, auditor)
	profileSvc := profileService.NewProfileService(userRepo, fileStorage)
	documentSvc := documentService.NewDocumentService(documentRepo, fileStorage)
	reportSvc := reportService.NewReportService(attendanceRepo, holidayRepo)

	scheduler := cron.NewScheduler()
	reminders := cron.NewReminderJobs(userRepo, attendanceRepo, dispatcher, jobRunStore, loc, nil)
	reminders.RegisterJobs(scheduler)
	scheduler.Start()

	handlers := appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authSvc, cfg.App.FrontendURL),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Admin:        appHTTP.NewAdminHandler(adminSvc),
		Broadcast:    appHTTP.NewBroadcastHandler(broadcastSvc),
		Holiday:      appHTTP.NewHolidayHandler(holidaySvc),
		Profile:      appHTTP.NewProfileHandler(profileSvc),
		Notification: appHTTP.NewNotificationHandler(dispatcher, jwtService),
		Document:     appHTTP.NewDocumentHandler(documentSvc),
		Audit:        appHTTP.NewAuditHandler(auditor),
		Report:       appHTTP.NewReportHandler(reportSvc),
	}

	router := appHTTP.NewRouter(cfg, jwtService, handlers)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE connections stay open
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Forced shutdown:", err)
	}

	scheduler.Stop()
	dispatcher.Stop()
}
