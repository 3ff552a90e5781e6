package routes

import (
	"net/http"

	"github.com/tenantlens/tenantlens/internal/app"
	"github.com/tenantlens/tenantlens/internal/handler"
	"github.com/tenantlens/tenantlens/internal/metrics"
	"github.com/tenantlens/tenantlens/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	user := handler.NewUserHandler()
	landlord := handler.NewLandlordHandler(app.LandlordService)
	review := handler.NewReviewHandler(app.ReviewService)
	admin := handler.NewAdminHandler(app.AdminService, app.LandlordService)

	mux := http.NewServeMux()

	// Ops
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", metrics.Handler())

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("POST /api/auth/request-verification", rateLimiter(auth.RequestVerification))
	mux.HandleFunc("POST /api/auth/verify-code", rateLimiter(auth.VerifyCode))
	mux.HandleFunc("POST /api/auth/signup", rateLimiter(auth.Signup))
	mux.HandleFunc("POST /api/auth/login", rateLimiter(auth.Login))

	// Users
	mux.HandleFunc("GET /api/users/me", middleware.RequireAuth(user.Me))

	// Landlords
	mux.HandleFunc("GET /api/landlords", landlord.List)
	mux.HandleFunc("GET /api/landlords/search", landlord.Search)
	mux.HandleFunc("GET /api/landlords/stats", landlord.Stats)
	mux.HandleFunc("GET /api/landlords/leaderboard", landlord.Leaderboard)
	mux.HandleFunc("POST /api/landlord-requests", middleware.RequireAuth(landlord.SubmitRequest))

	// Reviews
	mux.HandleFunc("POST /api/reviews", middleware.RequireAuth(review.Create))
	mux.HandleFunc("GET /api/reviews/landlord/{id}", review.ByLandlord)
	mux.HandleFunc("POST /api/reviews/{id}/report", middleware.RequireAuth(review.Report))

	// Admin
	mux.HandleFunc("GET /api/admin/landlord-requests", middleware.RequireAdmin(admin.LandlordRequests))
	mux.HandleFunc("POST /api/admin/landlord-requests/{id}/approve", middleware.RequireAdmin(admin.ApproveLandlordRequest))
	mux.HandleFunc("POST /api/admin/landlord-requests/{id}/deny", middleware.RequireAdmin(admin.DenyLandlordRequest))
	mux.HandleFunc("GET /api/admin/reported", middleware.RequireAdmin(admin.Reported))
	mux.HandleFunc("POST /api/admin/reported/{id}/approve", middleware.RequireAdmin(admin.ApproveReport))
	mux.HandleFunc("POST /api/admin/reported/{id}/deny", middleware.RequireAdmin(admin.DenyReport))

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		metrics.Instrument,
		middleware.RequestLogging,
		middleware.Auth(app.UserRepository),
	)

	return handler
}
