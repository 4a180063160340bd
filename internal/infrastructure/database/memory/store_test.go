package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-service/internal/domain/order"
	"auth-service/internal/domain/reset"
	"auth-service/internal/domain/user"
)

func seedUser(t *testing.T, s *Store, username, email string) *user.User {
	t.Helper()
	u := &user.User{Username: username, Email: email, PasswordHashed: "hash", IsActive: true}
	require.NoError(t, s.Users().Create(context.Background(), u))
	return u
}

func TestUserRepository_Uniqueness(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedUser(t, s, "alice", "a@x.com")

	err := s.Users().Create(ctx, &user.User{Username: "alice", Email: "other@x.com"})
	assert.ErrorIs(t, err, user.ErrDuplicateUsername)

	err = s.Users().Create(ctx, &user.User{Username: "bob", Email: "a@x.com"})
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)
}

func TestUserRepository_Lookups(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	alice := seedUser(t, s, "alice", "a@x.com")

	byName, err := s.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, byName.ID)

	byEmail, err := s.Users().GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, byEmail.ID)

	_, err = s.Users().GetByUsername(ctx, "Alice")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	// returned records are copies
	byName.PasswordHashed = "tampered"
	again, err := s.Users().GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash", again.PasswordHashed)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	alice := seedUser(t, s, "alice", "a@x.com")

	token := uuid.New()
	require.NoError(t, s.Resets().Create(ctx, &reset.Request{UserID: alice.ID, Token: token, Code: "123456"}))

	customer := &order.Customer{Code: "C-1", Name: "Acme"}
	require.NoError(t, s.Customers().Create(ctx, customer))
	require.NoError(t, s.Orders().Create(ctx, &order.Order{UserID: alice.ID, CustomerID: customer.ID}))

	require.NoError(t, s.Users().Delete(ctx, alice.ID))

	_, err := s.Resets().GetByToken(ctx, token)
	assert.ErrorIs(t, err, reset.ErrInvalidToken)

	orders, err := s.Orders().ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)

	// the customer is free again once its orders are gone
	assert.NoError(t, s.Customers().Delete(ctx, customer.ID))
}

func TestCustomerRepository_DeleteRestricted(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	alice := seedUser(t, s, "alice", "a@x.com")

	customer := &order.Customer{Code: "C-1", Name: "Acme"}
	require.NoError(t, s.Customers().Create(ctx, customer))
	require.NoError(t, s.Orders().Create(ctx, &order.Order{UserID: alice.ID, CustomerID: customer.ID}))

	assert.ErrorIs(t, s.Customers().Delete(ctx, customer.ID), order.ErrCustomerInUse)
	assert.ErrorIs(t, s.Customers().Create(ctx, &order.Customer{Code: "C-1"}), order.ErrDuplicateCustomerCode)
}

func TestOrderRepository_ListNewestFirst(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	alice := seedUser(t, s, "alice", "a@x.com")
	customer := &order.Customer{Code: "C-1", Name: "Acme"}
	require.NoError(t, s.Customers().Create(ctx, customer))

	first := &order.Order{UserID: alice.ID, CustomerID: customer.ID, OrderType: "first"}
	require.NoError(t, s.Orders().Create(ctx, first))
	time.Sleep(2 * time.Millisecond)
	second := &order.Order{UserID: alice.ID, CustomerID: customer.ID, OrderType: "second"}
	require.NoError(t, s.Orders().Create(ctx, second))

	orders, err := s.Orders().ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, order.StatusOngoing, orders[1].Status)

	err = s.Orders().Create(ctx, &order.Order{UserID: alice.ID, CustomerID: uuid.New()})
	assert.ErrorIs(t, err, order.ErrCustomerNotFound)
}

func TestResetRepository_ConsumeOnce(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	alice := seedUser(t, s, "alice", "a@x.com")

	req := &reset.Request{UserID: alice.ID, Token: uuid.New(), Code: "123456"}
	require.NoError(t, s.Resets().Create(ctx, req))

	const workers = 16
	var wg sync.WaitGroup
	var successes, alreadyUsed int32
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Resets().Consume(ctx, req.ID, alice.ID, "new-hash")
			switch {
			case err == nil:
				atomic.AddInt32(&successes, 1)
			case assert.ErrorIs(t, err, reset.ErrAlreadyUsed):
				atomic.AddInt32(&alreadyUsed, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes)
	assert.Equal(t, int32(workers-1), alreadyUsed)

	u, err := s.Users().GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", u.PasswordHashed)
}

func TestResetRepository_ConsumeMissingUserLeavesRequestUnused(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	alice := seedUser(t, s, "alice", "a@x.com")

	req := &reset.Request{UserID: alice.ID, Token: uuid.New(), Code: "123456"}
	require.NoError(t, s.Resets().Create(ctx, req))

	err := s.Resets().Consume(ctx, req.ID, uuid.New(), "new-hash")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	stored, err := s.Resets().GetByToken(ctx, req.Token)
	require.NoError(t, err)
	assert.False(t, stored.Used)
}
