package app

import (
	"github.com/tenantlens/tenantlens/internal/config"
	"github.com/tenantlens/tenantlens/internal/repository"
	"github.com/tenantlens/tenantlens/internal/service"
	"github.com/tenantlens/tenantlens/internal/supabase"
)

type App struct {
	Cfg             *config.Config
	Store           *supabase.Client
	UserRepository  repository.UserRepository
	AuthService     *service.AuthService
	ReviewService   *service.ReviewService
	LandlordService *service.LandlordService
	AdminService    *service.AdminService
}

func New(cfg *config.Config) *App {
	// Store client. Missing credentials are surfaced per request, not at
	// startup, so the server still boots for local work.
	store := supabase.New(cfg)

	// Repositories
	userRepository := repository.NewUserRepository(store)
	reviewRepository := repository.NewReviewRepository(store)
	landlordRepository := repository.NewLandlordRepository(store)
	requestRepository := repository.NewRequestRepository(store)
	reportRepository := repository.NewReportRepository(store)

	// Services
	emailSender := service.NewEmailSender(cfg)
	verificationService := service.NewVerificationService(emailSender, cfg.VerificationCodeTTL)
	authService := service.NewAuthService(userRepository, service.NewPasswordHasher(), verificationService)
	reviewService := service.NewReviewService(reviewRepository, reportRepository)
	landlordService := service.NewLandlordService(landlordRepository, reviewRepository, requestRepository)
	adminService := service.NewAdminService(reportRepository, reviewRepository)

	return &App{
		Cfg:             cfg,
		Store:           store,
		UserRepository:  userRepository,
		AuthService:     authService,
		ReviewService:   reviewService,
		LandlordService: landlordService,
		AdminService:    adminService,
	}
}
