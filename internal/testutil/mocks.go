package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockExchangeRateRepository is a mock implementation of domain.ExchangeRateRepository
type MockExchangeRateRepository struct {
	mu    sync.Mutex
	Rates []*domain.ExchangeRate
	Err   error
	Calls int
}

// NewMockExchangeRateRepository creates a new MockExchangeRateRepository
func NewMockExchangeRateRepository() *MockExchangeRateRepository {
	return &MockExchangeRateRepository{}
}

// AddRate adds a rate row (helper for tests): 1 base = rate quote on day
func (m *MockExchangeRateRepository) AddRate(day time.Time, base, quote string, rate float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rates = append(m.Rates, &domain.ExchangeRate{
		Day:   time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
		Base:  base,
		Quote: quote,
		Rate:  decimal.NewFromFloat(rate),
	})
}

// CallCount returns how many lookups reached the repository
func (m *MockExchangeRateRepository) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

// GetByDay retrieves the rate for an exact day
func (m *MockExchangeRateRepository) GetByDay(ctx context.Context, day time.Time, base, quote string) (*domain.ExchangeRate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	for _, r := range m.Rates {
		if r.Base == base && r.Quote == quote && r.Day.Equal(day) {
			return r, nil
		}
	}
	return nil, domain.ErrRateNotFound
}

// GetLatest retrieves the most recent rate for the pair
func (m *MockExchangeRateRepository) GetLatest(ctx context.Context, base, quote string) (*domain.ExchangeRate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	var latest *domain.ExchangeRate
	for _, r := range m.Rates {
		if r.Base == base && r.Quote == quote && (latest == nil || r.Day.After(latest.Day)) {
			latest = r
		}
	}
	if latest == nil {
		return nil, domain.ErrRateNotFound
	}
	return latest, nil
}

// Upsert stores a rate row, replacing the row of the same day and pair
func (m *MockExchangeRateRepository) Upsert(ctx context.Context, rate *domain.ExchangeRate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for i, r := range m.Rates {
		if r.Base == rate.Base && r.Quote == rate.Quote && r.Day.Equal(rate.Day) {
			m.Rates[i] = rate
			return nil
		}
	}
	m.Rates = append(m.Rates, rate)
	return nil
}

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users       map[string]*domain.User
	Profiles    map[uuid.UUID]*domain.TimeValueProfile
	RateChanges map[uuid.UUID][]*domain.HourlyRateChange
	Err         error
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:       make(map[string]*domain.User),
		Profiles:    make(map[uuid.UUID]*domain.TimeValueProfile),
		RateChanges: make(map[uuid.UUID][]*domain.HourlyRateChange),
	}
}

// AddUser adds a user with its profile (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User, profile *domain.TimeValueProfile) {
	m.Users[user.Auth0ID] = user
	if profile != nil {
		profile.UserID = user.ID
		m.Profiles[user.ID] = profile
	}
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (m *MockUserRepository) GetByAuth0ID(ctx context.Context, auth0ID string) (*domain.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetProfile retrieves the time-value profile of a user
func (m *MockUserRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.TimeValueProfile, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if profile, ok := m.Profiles[userID]; ok {
		return profile, nil
	}
	return nil, domain.ErrProfileNotFound
}

// ListHourlyRateChanges retrieves the hourly rate history of a user
func (m *MockUserRepository) ListHourlyRateChanges(ctx context.Context, userID uuid.UUID) ([]*domain.HourlyRateChange, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.RateChanges[userID], nil
}

// MockRowRepository serves every row kind of every user from memory.
// It implements the income, expense, asset, activity, budget and goal repositories.
type MockRowRepository struct {
	Incomes       map[uuid.UUID][]*domain.Income
	Expenses      map[uuid.UUID][]*domain.Expense
	Assets        map[uuid.UUID][]*domain.DurableAsset
	Activities    map[uuid.UUID][]*domain.Activity
	Budgets       map[uuid.UUID][]*domain.BudgetAllocation
	Goals         map[uuid.UUID][]*domain.Goal
	Contributions map[uuid.UUID][]*domain.GoalContribution

	// Err fails every list call when set
	Err error
}

// NewMockRowRepository creates a new MockRowRepository
func NewMockRowRepository() *MockRowRepository {
	return &MockRowRepository{
		Incomes:       make(map[uuid.UUID][]*domain.Income),
		Expenses:      make(map[uuid.UUID][]*domain.Expense),
		Assets:        make(map[uuid.UUID][]*domain.DurableAsset),
		Activities:    make(map[uuid.UUID][]*domain.Activity),
		Budgets:       make(map[uuid.UUID][]*domain.BudgetAllocation),
		Goals:         make(map[uuid.UUID][]*domain.Goal),
		Contributions: make(map[uuid.UUID][]*domain.GoalContribution),
	}
}

// IncomeRepo returns the repository as a domain.IncomeRepository
func (m *MockRowRepository) IncomeRepo() domain.IncomeRepository { return incomeRepo{m} }

// ExpenseRepo returns the repository as a domain.ExpenseRepository
func (m *MockRowRepository) ExpenseRepo() domain.ExpenseRepository { return expenseRepo{m} }

// AssetRepo returns the repository as a domain.DurableAssetRepository
func (m *MockRowRepository) AssetRepo() domain.DurableAssetRepository { return assetRepo{m} }

// ActivityRepo returns the repository as a domain.ActivityRepository
func (m *MockRowRepository) ActivityRepo() domain.ActivityRepository { return activityRepo{m} }

// BudgetRepo returns the repository as a domain.BudgetAllocationRepository
func (m *MockRowRepository) BudgetRepo() domain.BudgetAllocationRepository { return budgetRepo{m} }

// GoalRepo returns the repository as a domain.GoalRepository
func (m *MockRowRepository) GoalRepo() domain.GoalRepository { return goalRepo{m} }

type incomeRepo struct{ m *MockRowRepository }

func (r incomeRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Income, error) {
	if r.m.Err != nil {
		return nil, r.m.Err
	}
	return r.m.Incomes[userID], nil
}

type expenseRepo struct{ m *MockRowRepository }

func (r expenseRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Expense, error) {
	if r.m.Err != nil {
		return nil, r.m.Err
	}
	return r.m.Expenses[userID], nil
}

type assetRepo struct{ m *MockRowRepository }

func (r assetRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.DurableAsset, error) {
	if r.m.Err != nil {
		return nil, r.m.Err
	}
	return r.m.Assets[userID], nil
}

type activityRepo struct{ m *MockRowRepository }

func (r activityRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Activity, error) {
	if r.m.Err != nil {
		return nil, r.m.Err
	}
	return r.m.Activities[userID], nil
}

type budgetRepo struct{ m *MockRowRepository }

func (r budgetRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.BudgetAllocation, error) {
	if r.m.Err != nil {
		return nil, r.m.Err
	}
	return r.m.Budgets[userID], nil
}

type goalRepo struct{ m *MockRowRepository }

func (r goalRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	if r.m.Err != nil {
		return nil, r.m.Err
	}
	return r.m.Goals[userID], nil
}

func (r goalRepo) ListContributionsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.GoalContribution, error) {
	if r.m.Err != nil {
		return nil, r.m.Err
	}
	return r.m.Contributions[userID], nil
}

// Date returns midnight UTC of the given day (helper for tests)
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int { return &v }

// Int32Ptr returns a pointer to v
func Int32Ptr(v int32) *int32 { return &v }

// Int64Ptr returns a pointer to v
func Int64Ptr(v int64) *int64 { return &v }

// Float64Ptr returns a pointer to v
func Float64Ptr(v float64) *float64 { return &v }
