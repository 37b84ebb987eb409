package api

import (
	"net/http" // HTTP status codes

	"earning_admin/internal/auth"   // Admin credentials
	"earning_admin/internal/ledger" // Ledger mutator

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// ResetRequest carries the typed confirmation phrase
type ResetRequest struct {
	Confirm string `json:"confirm" binding:"required"` // Must be "DELETE ALL"
}

// ExportHandler downloads the whole document as pretty-printed JSON
func ExportHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := svc.Export(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+ledger.ExportFileName+`"`)
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
	}
}

// ImportHandler replaces the whole document with the request body
func ImportHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		doc, err := svc.Import(c.Request.Context(), body)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateViews(c.Request.Context(), rdb)
		c.JSON(http.StatusOK, gin.H{
			"message":   "Data imported",
			"users":     len(doc.Users),
			"deposits":  len(doc.Deposits),
			"withdraws": len(doc.Withdraws),
			"plans":     len(doc.Plans),
		})
	}
}

// ResetHandler erases the document, the admin password and every session
func ResetHandler(svc *ledger.Service, authSvc *auth.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		ctx := c.Request.Context()
		if err := svc.Reset(ctx, req.Confirm); err != nil {
			respondError(c, err)
			return
		}
		if err := authSvc.Reset(ctx); err != nil {
			logrus.WithField("error", err.Error()).Error("Credential reset failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Data erased but credentials could not be reset"})
			return
		}
		invalidateViews(ctx, rdb)
		c.JSON(http.StatusOK, gin.H{"message": "All data has been reset. You will be logged out."})
	}
}
