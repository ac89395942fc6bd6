package store

import (
	"context"
	"sync"

	"expense_tracker/internal/domain"
)

// MemoryStore implements Store for an in memory data set. It is used by the
// tests; a single mutex serializes every operation, which trivially satisfies
// the atomic allocate-and-insert contract.
type MemoryStore struct {
	mu       sync.Mutex
	users    []domain.User
	admins   []domain.Admin
	expenses []domain.Expense
	nextID   uint // Next storage-assigned opaque id
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an instance of MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// AddAdmin seeds an admin record. Admins have no create endpoint; tests and
// fixtures provision them directly.
func (s *MemoryStore) AddAdmin(admin domain.Admin) {
	s.mu.Lock()
	defer s.mu.Unlock()
	admin.ID = s.nextID
	s.nextID++
	s.admins = append(s.admins, admin)
}

func (s *MemoryStore) CreateUser(_ context.Context, user domain.User, allocateID bool) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if allocateID {
		max := 0
		for _, u := range s.users {
			if u.UserID > max {
				max = u.UserID
			}
		}
		user.UserID = max + 1
	}

	for _, u := range s.users {
		if u.UserID == user.UserID {
			return domain.User{}, ErrDuplicateID
		}
	}
	for _, u := range s.users {
		if u.UserEmail == user.UserEmail {
			return domain.User{}, ErrDuplicateEmail
		}
	}

	user.ID = s.nextID
	s.nextID++
	s.users = append(s.users, user)
	return user, nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.UserEmail == email {
			return u, nil
		}
	}
	return domain.User{}, ErrNotFound
}

func (s *MemoryStore) GetUserByID(_ context.Context, userID int) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.UserID == userID {
			return u, nil
		}
	}
	return domain.User{}, ErrNotFound
}

func (s *MemoryStore) ListUsers(_ context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]domain.User, len(s.users))
	copy(users, s.users)
	return users, nil
}

func (s *MemoryStore) UpdateUser(_ context.Context, userID int, up UserUpdate) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].UserID == userID {
			up.Apply(&s.users[i])
			return s.users[i], nil
		}
	}
	return domain.User{}, ErrNotFound
}

func (s *MemoryStore) DeleteUser(_ context.Context, userID int) (DeleteUserResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userIdx := -1
	for i := range s.users {
		if s.users[i].UserID == userID {
			userIdx = i
			break
		}
	}
	if userIdx == -1 {
		return DeleteUserResult{}, ErrNotFound
	}

	// Children first, then the user record.
	var result DeleteUserResult
	kept := s.expenses[:0]
	for _, e := range s.expenses {
		if e.UserID == userID {
			result.ExpensesDeleted++
			continue
		}
		kept = append(kept, e)
	}
	s.expenses = kept
	s.users = append(s.users[:userIdx], s.users[userIdx+1:]...)
	return result, nil
}

func (s *MemoryStore) ValidateUser(_ context.Context, email, pass string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.UserEmail == email && u.UserPass == pass {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) ListAdmins(_ context.Context) ([]domain.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	admins := make([]domain.Admin, len(s.admins))
	copy(admins, s.admins)
	return admins, nil
}

func (s *MemoryStore) GetAdmin(_ context.Context, adminID string) (domain.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.admins {
		if a.AdminID == adminID {
			return a, nil
		}
	}
	return domain.Admin{}, ErrNotFound
}

func (s *MemoryStore) ValidateAdmin(_ context.Context, adminID, pass string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.admins {
		if a.AdminID == adminID && a.AdminPass == pass {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) CreateExpense(_ context.Context, expense domain.Expense) (domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	max := 0
	for _, e := range s.expenses {
		if e.UserID == expense.UserID && e.TransactionNo > max {
			max = e.TransactionNo
		}
	}
	expense.TransactionNo = max + 1

	expense.ID = s.nextID
	s.nextID++
	s.expenses = append(s.expenses, expense)
	return expense, nil
}

func (s *MemoryStore) ListExpenses(_ context.Context) ([]domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expenses := make([]domain.Expense, len(s.expenses))
	copy(expenses, s.expenses)
	return expenses, nil
}

func (s *MemoryStore) ListUserExpenses(_ context.Context, userID int) ([]domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expenses := make([]domain.Expense, 0)
	for _, e := range s.expenses {
		if e.UserID == userID {
			expenses = append(expenses, e)
		}
	}
	return expenses, nil
}

func (s *MemoryStore) GetExpense(_ context.Context, userID, transactionNo int) (domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.expenses {
		if e.UserID == userID && e.TransactionNo == transactionNo {
			return e, nil
		}
	}
	return domain.Expense{}, ErrNotFound
}

func (s *MemoryStore) UpdateExpense(_ context.Context, userID, transactionNo int, up ExpenseUpdate) (domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.expenses {
		if s.expenses[i].UserID == userID && s.expenses[i].TransactionNo == transactionNo {
			up.Apply(&s.expenses[i])
			return s.expenses[i], nil
		}
	}
	return domain.Expense{}, ErrNotFound
}

func (s *MemoryStore) DeleteExpense(_ context.Context, userID, transactionNo int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.expenses {
		if s.expenses[i].UserID == userID && s.expenses[i].TransactionNo == transactionNo {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
