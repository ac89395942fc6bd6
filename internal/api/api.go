package api

import (
	"strconv"
	"time"

	"expense_tracker/internal/cache"
	"expense_tracker/internal/domain"
	"expense_tracker/internal/store"

	"github.com/gin-gonic/gin" // Gin web framework
)

// listCacheTTL bounds staleness of the cached list endpoints. Mutations
// invalidate the affected keys eagerly; the TTL only covers invalidations
// that were lost.
const listCacheTTL = 60 * time.Second

// userJSON projects a user to its public shape, without the storage id.
func userJSON(u domain.User) gin.H {
	return gin.H{
		"user_id":     u.UserID,
		"user_email":  u.UserEmail,
		"user_pass":   u.UserPass,
		"user_name":   u.UserName,
		"wallet":      u.Wallet,
		"profile_img": u.ProfileImg,
	}
}

// createdUserJSON is the create response shape: the public fields plus the
// storage-assigned opaque id.
func createdUserJSON(u domain.User) gin.H {
	h := userJSON(u)
	h["_id"] = strconv.FormatUint(uint64(u.ID), 10)
	return h
}

// expenseJSON projects an expense to its public shape.
func expenseJSON(e domain.Expense) gin.H {
	return gin.H{
		"user_id":          e.UserID,
		"transaction_no":   e.TransactionNo,
		"transaction_type": e.TransactionType,
		"title":            e.Title,
		"amount":           e.Amount,
		"category":         e.Category,
		"date":             e.Date,
	}
}

func createdExpenseJSON(e domain.Expense) gin.H {
	h := expenseJSON(e)
	h["_id"] = strconv.FormatUint(uint64(e.ID), 10)
	return h
}

// adminJSON projects an admin to its public shape.
func adminJSON(a domain.Admin) gin.H {
	return gin.H{
		"admin_id":   a.AdminID,
		"admin_pass": a.AdminPass,
	}
}

func usersJSON(users []domain.User) []gin.H {
	out := make([]gin.H, len(users))
	for i, u := range users {
		out[i] = userJSON(u)
	}
	return out
}

func expensesJSON(expenses []domain.Expense) []gin.H {
	out := make([]gin.H, len(expenses))
	for i, e := range expenses {
		out[i] = expenseJSON(e)
	}
	return out
}

func adminsJSON(admins []domain.Admin) []gin.H {
	out := make([]gin.H, len(admins))
	for i, a := range admins {
		out[i] = adminJSON(a)
	}
	return out
}

// Register mounts every route on the router. Authentication, CORS and the
// request timeout are middleware concerns and are applied by the caller.
func Register(r gin.IRouter, s store.Store, ch cache.Cache) {
	// Admin routes (read-only plus credential validation)
	r.GET("/admin", ListAdminsHandler(s))
	r.POST("/admin", ValidateAdminHandler(s))
	r.GET("/admin/:adminId", GetAdminHandler(s))

	// User routes
	r.GET("/users", ListUsersHandler(s, ch))
	r.GET("/users/:email", GetUserHandler(s))
	r.POST("/users", CreateUserHandler(s, ch))
	r.PUT("/users/:id", UpdateUserHandler(s, ch))
	r.DELETE("/users/:id", DeleteUserHandler(s, ch))
	r.POST("/user", ValidateUserHandler(s))

	// Expense routes
	r.GET("/expenses", ListExpensesHandler(s, ch))
	r.GET("/expenses/:userId", ListUserExpensesHandler(s, ch))
	r.GET("/expenses/:userId/:transactionNo", GetExpenseHandler(s))
	r.DELETE("/expenses/:userId/:transactionNo", DeleteExpenseHandler(s, ch))
	r.PUT("/expenses/:userId/:transactionNo", UpdateExpenseHandler(s, ch))
	r.POST("/expenses", CreateExpenseHandler(s, ch))
}
