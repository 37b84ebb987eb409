package api

import (
	"earning_admin/internal/auth"       // Admin credentials
	"earning_admin/internal/ledger"     // Ledger mutator
	"earning_admin/internal/middleware" // Auth and rate limit middleware

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Deps are the services shared by every handler
type Deps struct {
	Ledger       *ledger.Service           // Ledger mutator
	Auth         *auth.Service             // Admin credentials
	Redis        *redis.Client             // View cache and sessions
	JWTSecret    string                    // Token signing secret
	LoginLimiter *middleware.IPRateLimiter // Login throttle
}

// RegisterRoutes mounts the admin API on r
func RegisterRoutes(r *gin.Engine, d Deps) {
	// Login is the only unauthenticated route
	r.POST("/admin/login", middleware.RateLimitMiddleware(d.LoginLimiter), LoginHandler(d.Auth))

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(d.JWTSecret), middleware.AdminOnlyMiddleware(d.Auth))

	adminGroup.POST("/logout", LogoutHandler(d.Auth))                            // End this session
	adminGroup.GET("/dashboard", DashboardHandler(d.Ledger, d.Redis))            // Dashboard counters
	adminGroup.GET("/users", ListUsersHandler(d.Ledger, d.Redis))                // List users
	adminGroup.PUT("/users/:id", UpdateUserHandler(d.Ledger, d.Redis))           // Edit user
	adminGroup.DELETE("/users/:id", DeleteUserHandler(d.Ledger, d.Redis))        // Delete user
	adminGroup.GET("/deposits", ListDepositsHandler(d.Ledger, d.Redis))          // Deposit queue
	adminGroup.POST("/deposits/:id/approve", ApproveDepositHandler(d.Ledger, d.Redis))
	adminGroup.POST("/deposits/:id/reject", RejectDepositHandler(d.Ledger, d.Redis))
	adminGroup.GET("/withdraws", ListWithdrawsHandler(d.Ledger, d.Redis)) // Withdraw queue
	adminGroup.POST("/withdraws/:id/approve", ApproveWithdrawHandler(d.Ledger, d.Redis))
	adminGroup.POST("/withdraws/:id/reject", RejectWithdrawHandler(d.Ledger, d.Redis))
	adminGroup.GET("/plans", ListPlansHandler(d.Ledger, d.Redis))         // List plans
	adminGroup.POST("/plans", CreatePlanHandler(d.Ledger, d.Redis))       // Add plan
	adminGroup.PUT("/plans/:id", UpdatePlanHandler(d.Ledger, d.Redis))    // Edit plan
	adminGroup.DELETE("/plans/:id", DeletePlanHandler(d.Ledger, d.Redis)) // Delete plan
	adminGroup.GET("/settings", GetSettingsHandler(d.Ledger, d.Redis))
	adminGroup.PUT("/settings/announcement", AnnouncementHandler(d.Ledger, d.Redis))
	adminGroup.PUT("/settings/payment-methods", PaymentMethodsHandler(d.Ledger, d.Redis))
	adminGroup.PUT("/settings/password", ChangePasswordHandler(d.Auth))
	adminGroup.GET("/data/export", ExportHandler(d.Ledger))
	adminGroup.POST("/data/import", ImportHandler(d.Ledger, d.Redis))
	adminGroup.POST("/data/reset", ResetHandler(d.Ledger, d.Auth, d.Redis))
}
