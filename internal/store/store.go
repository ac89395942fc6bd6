package store

import (
	"context"
	"errors"

	"expense_tracker/internal/domain"
)

// ErrNotFound is returned when an entry could not be found
var ErrNotFound = errors.New("not found")

// ErrDuplicateID is returned when a user create collides on user_id
var ErrDuplicateID = errors.New("duplicate user id")

// ErrDuplicateEmail is returned when a user create collides on user_email
var ErrDuplicateEmail = errors.New("duplicate user email")

// ErrDeleteFailed is returned when a delete removed nothing despite the
// preceding existence check
var ErrDeleteFailed = errors.New("delete failed")

// DeleteUserResult reports the outcome of a cascading user delete.
type DeleteUserResult struct {
	ExpensesDeleted int64 // Expense records removed together with the user
}

// UserUpdate carries the fields of a user update request. Nil fields are left
// unchanged on the stored record.
type UserUpdate struct {
	UserPass   *string
	UserEmail  *string
	UserName   *string
	ProfileImg *int
	Wallet     *float64
}

// Apply merges the supplied fields over an existing user, field by field.
func (up UserUpdate) Apply(u *domain.User) {
	if up.UserPass != nil {
		u.UserPass = *up.UserPass
	}
	if up.UserEmail != nil {
		u.UserEmail = *up.UserEmail
	}
	if up.UserName != nil {
		u.UserName = *up.UserName
	}
	if up.ProfileImg != nil {
		u.ProfileImg = *up.ProfileImg
	}
	if up.Wallet != nil {
		u.Wallet = *up.Wallet
	}
}

// ExpenseUpdate carries the fields of an expense update request. Nil fields
// are left unchanged on the stored record.
type ExpenseUpdate struct {
	TransactionType *string
	Title           *string
	Amount          *float64
	Category        *string
	Date            *string
}

// Apply merges the supplied fields over an existing expense.
func (up ExpenseUpdate) Apply(e *domain.Expense) {
	if up.TransactionType != nil {
		e.TransactionType = *up.TransactionType
	}
	if up.Title != nil {
		e.Title = *up.Title
	}
	if up.Amount != nil {
		e.Amount = *up.Amount
	}
	if up.Category != nil {
		e.Category = *up.Category
	}
	if up.Date != nil {
		e.Date = *up.Date
	}
}

// Store is the persistence surface for the three record collections.
//
// Implementations must make allocate-and-insert atomic within an allocation
// scope: CreateUser with allocateID serializes against the global user id
// sequence, CreateExpense serializes against the per-user transaction number
// sequence. DeleteUser removes the user's expenses and the user record as one
// logical unit, children first.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user domain.User, allocateID bool) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	GetUserByID(ctx context.Context, userID int) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, userID int, up UserUpdate) (domain.User, error)
	DeleteUser(ctx context.Context, userID int) (DeleteUserResult, error)
	ValidateUser(ctx context.Context, email, pass string) (bool, error)

	// Admins (read-only surface)
	ListAdmins(ctx context.Context) ([]domain.Admin, error)
	GetAdmin(ctx context.Context, adminID string) (domain.Admin, error)
	ValidateAdmin(ctx context.Context, adminID, pass string) (bool, error)

	// Expenses
	CreateExpense(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	ListExpenses(ctx context.Context) ([]domain.Expense, error)
	ListUserExpenses(ctx context.Context, userID int) ([]domain.Expense, error)
	GetExpense(ctx context.Context, userID, transactionNo int) (domain.Expense, error)
	UpdateExpense(ctx context.Context, userID, transactionNo int, up ExpenseUpdate) (domain.Expense, error)
	DeleteExpense(ctx context.Context, userID, transactionNo int) error
}
