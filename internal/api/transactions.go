package api

import (
	"errors"   // Matching ledger errors
	"net/http" // HTTP status codes

	"earning_admin/internal/ledger" // Ledger mutator

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// ListDepositsHandler returns pending deposits and recent decisions
func ListDepositsHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		cachedView(c, rdb, "deposits", "deposits", svc.Deposits)
	}
}

// ApproveDepositHandler approves a pending deposit
func ApproveDepositHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		deposit, err := svc.ApproveDeposit(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, ledger.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User for this deposit not found!"})
				return
			}
			respondError(c, err)
			return
		}
		if deposit == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Deposit not found"})
			return
		}
		invalidateViews(c.Request.Context(), rdb)
		c.JSON(http.StatusOK, gin.H{"message": "Deposit approved", "deposit": deposit})
	}
}

// RejectDepositHandler rejects a pending deposit
func RejectDepositHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		deposit, err := svc.RejectDeposit(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		if deposit == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Deposit not found"})
			return
		}
		invalidateViews(c.Request.Context(), rdb)
		c.JSON(http.StatusOK, gin.H{"message": "Deposit rejected", "deposit": deposit})
	}
}

// ListWithdrawsHandler returns pending withdraws and recent decisions
func ListWithdrawsHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		cachedView(c, rdb, "withdraws", "withdraws", svc.Withdraws)
	}
}

// ApproveWithdrawHandler approves a pending withdraw, or rejects it when the balance no longer covers it
func ApproveWithdrawHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		withdraw, err := svc.ApproveWithdraw(c.Request.Context(), id)
		switch {
		case errors.Is(err, ledger.ErrInsufficientBalance):
			// The request was rejected instead; report the substitution
			invalidateViews(c.Request.Context(), rdb)
			c.JSON(http.StatusOK, gin.H{
				"message":       "User's balance is insufficient. Rejecting.",
				"auto_rejected": true,
				"withdraw":      withdraw,
			})
			return
		case errors.Is(err, ledger.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User for this withdrawal not found!"})
			return
		case err != nil:
			respondError(c, err)
			return
		}
		if withdraw == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Withdraw not found"})
			return
		}
		invalidateViews(c.Request.Context(), rdb)
		c.JSON(http.StatusOK, gin.H{"message": "Withdraw approved", "auto_rejected": false, "withdraw": withdraw})
	}
}

// RejectWithdrawHandler rejects a pending withdraw
func RejectWithdrawHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		withdraw, err := svc.RejectWithdraw(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		if withdraw == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Withdraw not found"})
			return
		}
		invalidateViews(c.Request.Context(), rdb)
		c.JSON(http.StatusOK, gin.H{"message": "Withdraw rejected", "withdraw": withdraw})
	}
}
