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

// createExpenseRequest uses pointer fields so that presence can be told apart
// from a zero value; amounts and dates are accepted as supplied.
type createExpenseRequest struct {
	UserID          *int     `json:"user_id"`
	TransactionType *string  `json:"transaction_type"`
	Title           *string  `json:"title"`
	Amount          *float64 `json:"amount"`
	Category        *string  `json:"category"`
	Date            *string  `json:"date"`
}

type updateExpenseRequest struct {
	TransactionType *string  `json:"transaction_type"`
	Title           *string  `json:"title"`
	Amount          *float64 `json:"amount"`
	Category        *string  `json:"category"`
	Date            *string  `json:"date"`
}

// expenseKey parses the composite key path parameters.
func expenseKey(c *gin.Context) (userID, transactionNo int, err error) {
	userID, err = strconv.Atoi(c.Param("userId"))
	if err != nil {
		return 0, 0, err
	}
	transactionNo, err = strconv.Atoi(c.Param("transactionNo"))
	if err != nil {
		return 0, 0, err
	}
	return userID, transactionNo, nil
}

// ListExpensesHandler returns all expenses
func ListExpensesHandler(s store.Store, ch cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var cached []domain.Expense
		if found, err := ch.Get(ctx, cache.ExpensesKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, expensesJSON(cached))
			return
		}

		expenses, err := s.ListExpenses(ctx)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to list expenses")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch expenses"})
			return
		}
		_ = ch.Set(ctx, cache.ExpensesKey, expenses, listCacheTTL)
		c.JSON(http.StatusOK, expensesJSON(expenses))
	}
}

// ListUserExpensesHandler returns all expenses of one user. An unknown user
// simply has an empty list.
func ListUserExpensesHandler(s store.Store, ch cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.Atoi(c.Param("userId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
			return
		}
		ctx := c.Request.Context()
		key := cache.UserExpensesKey(userID)

		var cached []domain.Expense
		if found, err := ch.Get(ctx, key, &cached); err == nil && found {
			c.JSON(http.StatusOK, expensesJSON(cached))
			return
		}

		expenses, err := s.ListUserExpenses(ctx, userID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Failed to list user expenses")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch expenses"})
			return
		}
		_ = ch.Set(ctx, key, expenses, listCacheTTL)
		c.JSON(http.StatusOK, expensesJSON(expenses))
	}
}

// GetExpenseHandler returns one expense by user id and transaction number.
// Lookup failures other than not-found echo the error detail.
func GetExpenseHandler(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, transactionNo, err := expenseKey(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error has occured", "error": err.Error()})
			return
		}

		expense, err := s.GetExpense(c.Request.Context(), userID, transactionNo)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Expense not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error has occured", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, expenseJSON(expense))
	}
}

// DeleteExpenseHandler removes one expense. The freed transaction number is
// not reused.
func DeleteExpenseHandler(s store.Store, ch cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, transactionNo, err := expenseKey(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid path parameters"})
			return
		}

		if err := s.DeleteExpense(c.Request.Context(), userID, transactionNo); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Expense not found"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"user_id":        userID,
				"transaction_no": transactionNo,
				"error":          err.Error(),
			}).Error("Failed to delete expense")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete expense"})
			return
		}

		logrus.WithFields(logrus.Fields{
			"user_id":        userID,
			"transaction_no": transactionNo,
		}).Info("Expense deleted")

		_ = ch.Delete(c.Request.Context(), cache.ExpensesKey, cache.UserExpensesKey(userID))
		c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
	}
}

// UpdateExpenseHandler merges the supplied fields over an existing expense;
// the composite key itself cannot be changed.
func UpdateExpenseHandler(s store.Store, ch cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, transactionNo, err := expenseKey(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid path parameters"})
			return
		}

		var req updateExpenseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}

		updated, err := s.UpdateExpense(c.Request.Context(), userID, transactionNo, store.ExpenseUpdate{
			TransactionType: req.TransactionType,
			Title:           req.Title,
			Amount:          req.Amount,
			Category:        req.Category,
			Date:            req.Date,
		})
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Expense not found"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"user_id":        userID,
				"transaction_no": transactionNo,
				"error":          err.Error(),
			}).Error("Failed to update expense")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update expense"})
			return
		}

		_ = ch.Delete(c.Request.Context(), cache.ExpensesKey, cache.UserExpensesKey(userID))
		c.JSON(http.StatusOK, expenseJSON(updated))
	}
}

// CreateExpenseHandler creates an expense. The transaction number is
// allocated from the owning user's sequence, never taken from the request.
func CreateExpenseHandler(s store.Store, ch cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createExpenseRequest
		if err := c.ShouldBindJSON(&req); err != nil ||
			req.UserID == nil || req.TransactionType == nil || req.Title == nil ||
			req.Amount == nil || req.Category == nil || req.Date == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Add complete expense data"})
			return
		}

		created, err := s.CreateExpense(c.Request.Context(), domain.Expense{
			UserID:          *req.UserID,
			TransactionType: *req.TransactionType,
			Title:           *req.Title,
			Amount:          *req.Amount,
			Category:        *req.Category,
			Date:            *req.Date,
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": *req.UserID,
				"error":   err.Error(),
			}).Error("Failed to create expense")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create expense"})
			return
		}

		logrus.WithFields(logrus.Fields{
			"user_id":        created.UserID,
			"transaction_no": created.TransactionNo,
			"amount":         created.Amount,
		}).Info("Expense created")

		_ = ch.Delete(c.Request.Context(), cache.ExpensesKey, cache.UserExpensesKey(created.UserID))
		c.JSON(http.StatusCreated, createdExpenseJSON(created))
	}
}
