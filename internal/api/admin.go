package api

import (
	"net/http" // HTTP status codes

	"earning_admin/internal/ledger" // Ledger mutator

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Decimal request fields
)

// UpdateUserRequest is the admin user edit form
type UpdateUserRequest struct {
	Name    string           `json:"name" binding:"required"`    // New name
	Phone   string           `json:"phone" binding:"required"`   // New phone
	Balance *decimal.Decimal `json:"balance" binding:"required"` // Number or numeric string
	Plan    string           `json:"plan"`                       // Plan name or "None"
}

// PlanRequest is the plan form; on update, omitted fields keep their value
type PlanRequest struct {
	Name     *string          `json:"name"`                               // Plan name
	Price    *decimal.Decimal `json:"price"`                              // Plan price
	Reward   *decimal.Decimal `json:"reward"`                             // Plan reward
	Validity *int             `json:"validity" binding:"omitempty,gte=0"` // Validity in days
}

// AnnouncementRequest replaces the announcement
type AnnouncementRequest struct {
	Announcement string `json:"announcement"` // May be empty to clear it
}

// PaymentMethodsRequest replaces the payment method map
type PaymentMethodsRequest struct {
	PaymentMethods map[string]string `json:"paymentMethods" binding:"required"` // Method name to address
}

// DashboardHandler returns the dashboard counters
func DashboardHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		cachedView(c, rdb, "dashboard", "stats", svc.Stats)
	}
}

// ListUsersHandler returns all users
func ListUsersHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		cachedView(c, rdb, "users", "users", svc.Users)
	}
}

// UpdateUserHandler overwrites a user's name, phone, balance and plan
func UpdateUserHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req UpdateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := svc.SaveUser(c.Request.Context(), ledger.UserEdit{
			ID:      id,
			Name:    req.Name,
			Phone:   req.Phone,
			Balance: *req.Balance,
			Plan:    req.Plan,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateViews(c.Request.Context(), rdb)
		c.JSON(http.StatusOK, gin.H{"message": "User updated successfully!", "user": user})
	}
}

// DeleteUserHandler removes a user; requires ?confirm=true
func DeleteUserHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok || !confirmed(c) {
			return
		}
		removed, err := svc.DeleteUser(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		if removed {
			invalidateViews(c.Request.Context(), rdb)
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully.", "deleted": removed})
	}
}

// ListPlansHandler returns all plans
func ListPlansHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		cachedView(c, rdb, "plans", "plans", svc.Plans)
	}
}

// CreatePlanHandler appends a plan with the next free id
func CreatePlanHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// A new plan needs every field
		if req.Name == nil || req.Price == nil || req.Reward == nil || req.Validity == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, price, reward and validity are required"})
			return
		}
		savePlan(c, svc, rdb, 0, req, http.StatusCreated)
	}
}

// UpdatePlanHandler merges the supplied fields into an existing plan
func UpdatePlanHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req PlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		savePlan(c, svc, rdb, id, req, http.StatusOK)
	}
}

func savePlan(c *gin.Context, svc *ledger.Service, rdb *redis.Client, id int64, req PlanRequest, status int) {
	plan, err := svc.SavePlan(c.Request.Context(), ledger.PlanEdit{
		ID:       id,
		Name:     req.Name,
		Price:    req.Price,
		Reward:   req.Reward,
		Validity: req.Validity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	invalidateViews(c.Request.Context(), rdb)
	c.JSON(status, gin.H{"message": "Plan saved successfully!", "plan": plan})
}

// DeletePlanHandler removes a plan; requires ?confirm=true
func DeletePlanHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok || !confirmed(c) {
			return
		}
		removed, err := svc.DeletePlan(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		if removed {
			invalidateViews(c.Request.Context(), rdb)
		}
		c.JSON(http.StatusOK, gin.H{"message": "Plan deleted successfully.", "deleted": removed})
	}
}

// GetSettingsHandler returns the announcement and payment methods
func GetSettingsHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		cachedView(c, rdb, "settings", "settings", svc.Settings)
	}
}

// AnnouncementHandler replaces the announcement
func AnnouncementHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AnnouncementRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := svc.SaveAnnouncement(c.Request.Context(), req.Announcement); err != nil {
			respondError(c, err)
			return
		}
		invalidateViews(c.Request.Context(), rdb)
		c.JSON(http.StatusOK, gin.H{"message": "Announcement updated!"})
	}
}

// PaymentMethodsHandler replaces the payment methods
func PaymentMethodsHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PaymentMethodsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := svc.SavePaymentMethods(c.Request.Context(), req.PaymentMethods); err != nil {
			respondError(c, err)
			return
		}
		invalidateViews(c.Request.Context(), rdb)
		c.JSON(http.StatusOK, gin.H{"message": "Payment methods updated!"})
	}
}
