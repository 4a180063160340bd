// Package memory keeps every table in process memory. It backs DB_DRIVER=memory
// for local runs and the service scenario tests. All repositories share one
// lock so that cascades and Consume stay atomic across tables.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"auth-service/internal/domain/order"
	"auth-service/internal/domain/reset"
	"auth-service/internal/domain/user"
)

type Store struct {
	mu        sync.RWMutex
	users     map[uuid.UUID]user.User
	resets    map[uuid.UUID]reset.Request
	customers map[uuid.UUID]order.Customer
	orders    map[uuid.UUID]order.Order
}

func NewStore() *Store {
	return &Store{
		users:     make(map[uuid.UUID]user.User),
		resets:    make(map[uuid.UUID]reset.Request),
		customers: make(map[uuid.UUID]order.Customer),
		orders:    make(map[uuid.UUID]order.Order),
	}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}

func (s *Store) Resets() *ResetRepository {
	return &ResetRepository{s: s}
}

func (s *Store) Orders() *OrderRepository {
	return &OrderRepository{s: s}
}

func (s *Store) Customers() *CustomerRepository {
	return &CustomerRepository{s: s}
}

// Health always succeeds; it mirrors the postgres DB so both can back /health.
func (s *Store) Health(ctx context.Context) error {
	return ctx.Err()
}

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Username == u.Username {
			return user.ErrDuplicateUsername
		}
		if existing.Email == u.Email {
			return user.ErrDuplicateEmail
		}
	}

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*user.User, error) {
	return r.find(func(u *user.User) bool { return u.Username == username })
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*user.User, error) {
	return r.find(func(u *user.User) bool { return u.Email == email })
}

func (r *UserRepository) GetByID(_ context.Context, userID uuid.UUID) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[userID]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) find(match func(*user.User) bool) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if match(&u) {
			found := u
			return &found, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *UserRepository) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.updatePasswordLocked(userID, passwordHash)
}

// Delete removes the user with its reset requests and orders.
func (r *UserRepository) Delete(_ context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[userID]; !ok {
		return user.ErrUserNotFound
	}
	delete(r.s.users, userID)

	for id, req := range r.s.resets {
		if req.UserID == userID {
			delete(r.s.resets, id)
		}
	}
	for id, o := range r.s.orders {
		if o.UserID == userID {
			delete(r.s.orders, id)
		}
	}
	return nil
}

func (s *Store) updatePasswordLocked(userID uuid.UUID, passwordHash string) error {
	u, ok := s.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHashed = passwordHash
	u.UpdatedAt = time.Now().UTC()
	s.users[userID] = u
	return nil
}

type ResetRepository struct {
	s *Store
}

func (r *ResetRepository) Create(_ context.Context, req *reset.Request) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[req.UserID]; !ok {
		return user.ErrUserNotFound
	}
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	r.s.resets[req.ID] = *req
	return nil
}

func (r *ResetRepository) GetByToken(_ context.Context, token uuid.UUID) (*reset.Request, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, req := range r.s.resets {
		if req.Token == token {
			found := req
			return &found, nil
		}
	}
	return nil, reset.ErrInvalidToken
}

func (r *ResetRepository) Consume(_ context.Context, requestID, userID uuid.UUID, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	req, ok := r.s.resets[requestID]
	if !ok || req.Used {
		return reset.ErrAlreadyUsed
	}
	if err := r.s.updatePasswordLocked(userID, passwordHash); err != nil {
		return err
	}

	req.Used = true
	r.s.resets[requestID] = req
	return nil
}

type OrderRepository struct {
	s *Store
}

func (r *OrderRepository) Create(_ context.Context, o *order.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.customers[o.CustomerID]; !ok {
		return order.ErrCustomerNotFound
	}
	if _, ok := r.s.users[o.UserID]; !ok {
		return user.ErrUserNotFound
	}

	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = order.StatusOngoing
	}
	o.CreatedAt = time.Now().UTC()

	r.s.orders[o.ID] = *o
	return nil
}

func (r *OrderRepository) GetByID(_ context.Context, orderID uuid.UUID) (*order.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.orders[orderID]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return &o, nil
}

func (r *OrderRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*order.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	orders := make([]*order.Order, 0)
	for _, o := range r.s.orders {
		if o.UserID == userID {
			found := o
			orders = append(orders, &found)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(_ context.Context, orderID uuid.UUID, status order.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[orderID]
	if !ok {
		return order.ErrOrderNotFound
	}
	o.Status = status
	r.s.orders[orderID] = o
	return nil
}

type CustomerRepository struct {
	s *Store
}

func (r *CustomerRepository) Create(_ context.Context, c *order.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.customers {
		if existing.Code == c.Code {
			return order.ErrDuplicateCustomerCode
		}
	}

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now().UTC()

	r.s.customers[c.ID] = *c
	return nil
}

func (r *CustomerRepository) GetByID(_ context.Context, customerID uuid.UUID) (*order.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.customers[customerID]
	if !ok {
		return nil, order.ErrCustomerNotFound
	}
	return &c, nil
}

func (r *CustomerRepository) Delete(_ context.Context, customerID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.customers[customerID]; !ok {
		return order.ErrCustomerNotFound
	}
	for _, o := range r.s.orders {
		if o.CustomerID == customerID {
			return order.ErrCustomerInUse
		}
	}
	delete(r.s.customers, customerID)
	return nil
}
