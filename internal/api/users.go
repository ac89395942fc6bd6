package api

import (
	"errors"
	"net/http"
	"strconv"

	"expense_tracker/internal/cache"
	"expense_tracker/internal/domain"
	"expense_tracker/internal/store"

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// createUserRequest uses pointer fields so that presence can be told apart
// from a zero value; validation is presence-only.
type createUserRequest struct {
	UserID    *int    `json:"user_id"` // Optional; bypasses allocation when supplied
	UserPass  *string `json:"user_pass"`
	UserEmail *string `json:"user_email"`
	UserName  *string `json:"user_name"`
}

type updateUserRequest struct {
	UserPass   *string  `json:"user_pass"`
	UserEmail  *string  `json:"user_email"`
	UserName   *string  `json:"user_name"`
	ProfileImg *int     `json:"profile_img"`
	Wallet     *float64 `json:"wallet"`
}

type validateUserRequest struct {
	UserEmail *string `json:"user_email"`
	UserPass  *string `json:"user_pass"`
}

// ListUsersHandler returns all users
func ListUsersHandler(s store.Store, ch cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var cached []domain.User
		if found, err := ch.Get(ctx, cache.UsersKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, usersJSON(cached))
			return
		}

		users, err := s.ListUsers(ctx)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to list users")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users"})
			return
		}
		_ = ch.Set(ctx, cache.UsersKey, users, listCacheTTL)
		c.JSON(http.StatusOK, usersJSON(users))
	}
}

// GetUserHandler returns a single user looked up by email
func GetUserHandler(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := s.GetUserByEmail(c.Request.Context(), c.Param("email"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
				return
			}
			logrus.WithField("error", err.Error()).Error("Failed to fetch user")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch user"})
			return
		}
		c.JSON(http.StatusOK, userJSON(user))
	}
}

// CreateUserHandler creates a user. The user id is allocated from the global
// sequence unless the request supplies one; wallet and profile image always
// start at their defaults.
func CreateUserHandler(s store.Store, ch cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createUserRequest
		if err := c.ShouldBindJSON(&req); err != nil ||
			req.UserPass == nil || req.UserName == nil || req.UserEmail == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Enter all details"})
			return
		}

		user := domain.User{
			UserPass:   *req.UserPass,
			UserEmail:  *req.UserEmail,
			UserName:   *req.UserName,
			Wallet:     0,
			ProfileImg: 1,
		}
		allocateID := req.UserID == nil
		if !allocateID {
			user.UserID = *req.UserID
		}

		created, err := s.CreateUser(c.Request.Context(), user, allocateID)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrDuplicateID):
				c.JSON(http.StatusConflict, gin.H{"message": "User with this user ID already exists"})
			case errors.Is(err, store.ErrDuplicateEmail):
				c.JSON(http.StatusConflict, gin.H{"message": "User with this email already exists"})
			default:
				logrus.WithFields(logrus.Fields{
					"user_email": user.UserEmail,
					"error":      err.Error(),
				}).Error("Failed to create user")
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user"})
			}
			return
		}

		logrus.WithFields(logrus.Fields{
			"user_id":    created.UserID,
			"user_email": created.UserEmail,
		}).Info("User created")

		_ = ch.Delete(c.Request.Context(), cache.UsersKey)
		c.JSON(http.StatusCreated, createdUserJSON(created))
	}
}

// UpdateUserHandler merges the supplied fields over an existing user; fields
// absent from the payload are left unchanged.
func UpdateUserHandler(s store.Store, ch cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
			return
		}

		var req updateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}

		updated, err := s.UpdateUser(c.Request.Context(), userID, store.UserUpdate{
			UserPass:   req.UserPass,
			UserEmail:  req.UserEmail,
			UserName:   req.UserName,
			ProfileImg: req.ProfileImg,
			Wallet:     req.Wallet,
		})
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "User does not exist"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Failed to update user")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update user"})
			return
		}

		_ = ch.Delete(c.Request.Context(), cache.UsersKey)
		c.JSON(http.StatusOK, userJSON(updated))
	}
}

// DeleteUserHandler removes a user together with all of their expenses. The
// response distinguishes whether any expenses were associated.
func DeleteUserHandler(s store.Store, ch cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
			return
		}

		result, err := s.DeleteUser(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Failed to delete user")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete user"})
			return
		}

		logrus.WithFields(logrus.Fields{
			"user_id":          userID,
			"expenses_deleted": result.ExpensesDeleted,
		}).Info("User deleted")

		_ = ch.Delete(c.Request.Context(),
			cache.UsersKey, cache.ExpensesKey, cache.UserExpensesKey(userID))

		if result.ExpensesDeleted > 0 {
			c.JSON(http.StatusOK, gin.H{
				"message":          "User and associated expenses deleted successfully",
				"expenses_deleted": result.ExpensesDeleted,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "User deleted successfully, but no associated expenses found",
		})
	}
}

// ValidateUserHandler checks an email/password pair against the stored
// credentials. The comparison is an exact match on plaintext, kept for
// compatibility with existing records; there is no hashing and no session.
func ValidateUserHandler(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil ||
			req.UserEmail == nil || *req.UserEmail == "" ||
			req.UserPass == nil || *req.UserPass == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User ID and password required"})
			return
		}

		valid, err := s.ValidateUser(c.Request.Context(), *req.UserEmail, *req.UserPass)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to validate user")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to validate user"})
			return
		}
		if valid {
			c.JSON(http.StatusOK, gin.H{"valid": true})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false})
	}
}
