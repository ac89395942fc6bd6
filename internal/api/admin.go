package api

import (
	"errors"
	"net/http"

	"expense_tracker/internal/store"

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

type validateAdminRequest struct {
	AdminID   *string `json:"admin_id"`
	AdminPass *string `json:"admin_pass"`
}

// ListAdminsHandler returns all admins
func ListAdminsHandler(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		admins, err := s.ListAdmins(c.Request.Context())
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to list admins")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch admins"})
			return
		}
		c.JSON(http.StatusOK, adminsJSON(admins))
	}
}

// ValidateAdminHandler checks an admin id/password pair against the stored
// credentials, exact match on plaintext. Returns a bare boolean; no session
// is issued.
func ValidateAdminHandler(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validateAdminRequest
		if err := c.ShouldBindJSON(&req); err != nil ||
			req.AdminID == nil || *req.AdminID == "" ||
			req.AdminPass == nil || *req.AdminPass == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Admin ID and password required"})
			return
		}

		valid, err := s.ValidateAdmin(c.Request.Context(), *req.AdminID, *req.AdminPass)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to validate admin")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to validate admin"})
			return
		}
		if valid {
			c.JSON(http.StatusOK, gin.H{"valid": true})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false})
	}
}

// GetAdminHandler returns a single admin looked up by admin id
func GetAdminHandler(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := s.GetAdmin(c.Request.Context(), c.Param("adminId"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Admin not found"})
				return
			}
			logrus.WithField("error", err.Error()).Error("Failed to fetch admin")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch admin"})
			return
		}
		c.JSON(http.StatusOK, adminJSON(admin))
	}
}
