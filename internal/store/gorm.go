package store

import (
	"context"
	"errors"
	"fmt"

	"expense_tracker/internal/domain"
	"expense_tracker/internal/sequence"

	"gorm.io/gorm"
)

// GormStore implements Store on a GORM database handle.
type GormStore struct {
	db    *gorm.DB
	locks *sequence.Locker
}

var _ Store = (*GormStore)(nil)

// NewGormStore creates an instance of GormStore
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, locks: sequence.NewLocker()}
}

// nextUserID returns the next user id: current maximum plus one, 1 for an
// empty table. Callers must hold the user scope lock.
func nextUserID(db *gorm.DB) (int, error) {
	var last domain.User
	err := db.Order("user_id desc").First(&last).Error
	switch {
	case err == nil:
		return last.UserID + 1, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return 1, nil
	default:
		return 0, fmt.Errorf("allocate user id: %w", err)
	}
}

// CreateUser inserts a user, allocating the next user id unless the caller
// supplied one. Both duplicate checks precede the insert so a conflict has no
// side effect.
func (s *GormStore) CreateUser(ctx context.Context, user domain.User, allocateID bool) (domain.User, error) {
	// Serialize against all other user creations; the explicit-id path still
	// needs its uniqueness check to be atomic with the insert.
	unlock := s.locks.Lock(sequence.UserScope)
	defer unlock()

	db := s.db.WithContext(ctx)
	if allocateID {
		id, err := nextUserID(db)
		if err != nil {
			return domain.User{}, err
		}
		user.UserID = id
	}

	var count int64
	if err := db.Model(&domain.User{}).Where("user_id = ?", user.UserID).Count(&count).Error; err != nil {
		return domain.User{}, fmt.Errorf("check user id: %w", err)
	}
	if count > 0 {
		return domain.User{}, ErrDuplicateID
	}
	if err := db.Model(&domain.User{}).Where("user_email = ?", user.UserEmail).Count(&count).Error; err != nil {
		return domain.User{}, fmt.Errorf("check user email: %w", err)
	}
	if count > 0 {
		return domain.User{}, ErrDuplicateEmail
	}

	if err := db.Create(&user).Error; err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// GetUserByEmail returns the user with the given email
func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("user_email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// GetUserByID returns the user with the given public user id
func (s *GormStore) GetUserByID(ctx context.Context, userID int) (domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// ListUsers returns all users
func (s *GormStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0)
	if err := s.db.WithContext(ctx).Order("user_id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateUser merges the supplied fields over the stored user and persists it.
func (s *GormStore) UpdateUser(ctx context.Context, userID int, up UserUpdate) (domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("get user: %w", err)
		}
		up.Apply(&user)
		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// DeleteUser removes a user together with all of their expenses, children
// first, inside one transaction. The user is looked up before anything is
// deleted, so a missing user has no side effect on expenses.
func (s *GormStore) DeleteUser(ctx context.Context, userID int) (DeleteUserResult, error) {
	var result DeleteUserResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user domain.User
		if err := tx.Where("user_id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("get user: %w", err)
		}
		del := tx.Where("user_id = ?", userID).Delete(&domain.Expense{})
		if del.Error != nil {
			return fmt.Errorf("delete expenses: %w", del.Error)
		}
		result.ExpensesDeleted = del.RowsAffected
		if err := tx.Delete(&user).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return DeleteUserResult{}, err
	}
	return result, nil
}

// ValidateUser reports whether a user exists with exactly this email and
// password. Stored passwords are plaintext; this is a membership test, not an
// authentication scheme.
func (s *GormStore) ValidateUser(ctx context.Context, email, pass string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.User{}).
		Where("user_email = ? AND user_pass = ?", email, pass).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("validate user: %w", err)
	}
	return count > 0, nil
}

// ListAdmins returns all admins
func (s *GormStore) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	admins := make([]domain.Admin, 0)
	if err := s.db.WithContext(ctx).Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

// GetAdmin returns the admin with the given admin id
func (s *GormStore) GetAdmin(ctx context.Context, adminID string) (domain.Admin, error) {
	var admin domain.Admin
	if err := s.db.WithContext(ctx).Where("admin_id = ?", adminID).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Admin{}, ErrNotFound
		}
		return domain.Admin{}, fmt.Errorf("get admin: %w", err)
	}
	return admin, nil
}

// ValidateAdmin reports whether an admin exists with exactly this id and
// password.
func (s *GormStore) ValidateAdmin(ctx context.Context, adminID, pass string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.Admin{}).
		Where("admin_id = ? AND admin_pass = ?", adminID, pass).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("validate admin: %w", err)
	}
	return count > 0, nil
}

// CreateExpense inserts an expense, allocating the next transaction number in
// the user's sequence: current maximum plus one, 1 for the user's first
// expense. Numbers freed by deletion are not refilled.
func (s *GormStore) CreateExpense(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	unlock := s.locks.Lock(sequence.ExpenseScope(expense.UserID))
	defer unlock()

	db := s.db.WithContext(ctx)
	var last domain.Expense
	err := db.Where("user_id = ?", expense.UserID).Order("transaction_no desc").First(&last).Error
	switch {
	case err == nil:
		expense.TransactionNo = last.TransactionNo + 1
	case errors.Is(err, gorm.ErrRecordNotFound):
		expense.TransactionNo = 1
	default:
		return domain.Expense{}, fmt.Errorf("allocate transaction no: %w", err)
	}

	if err := db.Create(&expense).Error; err != nil {
		return domain.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	return expense, nil
}

// ListExpenses returns all expenses
func (s *GormStore) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	expenses := make([]domain.Expense, 0)
	if err := s.db.WithContext(ctx).Order("user_id, transaction_no").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// ListUserExpenses returns all expenses of one user
func (s *GormStore) ListUserExpenses(ctx context.Context, userID int) ([]domain.Expense, error) {
	expenses := make([]domain.Expense, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("transaction_no").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("list user expenses: %w", err)
	}
	return expenses, nil
}

// GetExpense returns one expense by its composite key
func (s *GormStore) GetExpense(ctx context.Context, userID, transactionNo int) (domain.Expense, error) {
	var expense domain.Expense
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND transaction_no = ?", userID, transactionNo).
		First(&expense).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Expense{}, ErrNotFound
		}
		return domain.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	return expense, nil
}

// UpdateExpense merges the supplied fields over the stored expense and
// persists it. The composite key is never changed by an update.
func (s *GormStore) UpdateExpense(ctx context.Context, userID, transactionNo int, up ExpenseUpdate) (domain.Expense, error) {
	var expense domain.Expense
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND transaction_no = ?", userID, transactionNo).
			First(&expense).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("get expense: %w", err)
		}
		up.Apply(&expense)
		if err := tx.Save(&expense).Error; err != nil {
			return fmt.Errorf("save expense: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Expense{}, err
	}
	return expense, nil
}

// DeleteExpense removes one expense by its composite key. ErrDeleteFailed is
// returned when the row existed but the delete removed nothing.
func (s *GormStore) DeleteExpense(ctx context.Context, userID, transactionNo int) error {
	db := s.db.WithContext(ctx)
	var expense domain.Expense
	err := db.Where("user_id = ? AND transaction_no = ?", userID, transactionNo).
		First(&expense).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get expense: %w", err)
	}
	del := db.Delete(&expense)
	if del.Error != nil {
		return fmt.Errorf("delete expense: %w", del.Error)
	}
	if del.RowsAffected != 1 {
		return ErrDeleteFailed
	}
	return nil
}
