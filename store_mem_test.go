// store_mem_test.go
//
// In-memory store fakes so service and handler tests run without MongoDB.
// They mirror the mongo stores' not-found semantics exactly.

package main

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memUserStore struct {
	users map[primitive.ObjectID]User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[primitive.ObjectID]User{}}
}

func (s *memUserStore) List(ctx context.Context) ([]User, error) {
	out := []User{}
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *memUserStore) Get(ctx context.Context, id primitive.ObjectID) (*User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, errNotFound("User")
	}
	return &u, nil
}

func (s *memUserStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, errNotFound("User")
}

func (s *memUserStore) Insert(ctx context.Context, u *User) error {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.ID] = *u
	return nil
}

func (s *memUserStore) Update(ctx context.Context, u *User) error {
	if _, ok := s.users[u.ID]; !ok {
		return errNotFound("User")
	}
	u.UpdatedAt = time.Now().UTC()
	s.users[u.ID] = *u
	return nil
}

func (s *memUserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := s.users[id]; !ok {
		return errNotFound("User")
	}
	delete(s.users, id)
	return nil
}

type memProductStore struct {
	products map[primitive.ObjectID]Product
}

func newMemProductStore() *memProductStore {
	return &memProductStore{products: map[primitive.ObjectID]Product{}}
}

func (s *memProductStore) List(ctx context.Context) ([]Product, error) {
	out := []Product{}
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *memProductStore) Get(ctx context.Context, id primitive.ObjectID) (*Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, errNotFound("Product")
	}
	return &p, nil
}

func (s *memProductStore) Insert(ctx context.Context, p *Product) error {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt, p.UpdatedAt = now, now
	s.products[p.ID] = *p
	return nil
}

func (s *memProductStore) Update(ctx context.Context, p *Product) error {
	if _, ok := s.products[p.ID]; !ok {
		return errNotFound("Product")
	}
	p.UpdatedAt = time.Now().UTC()
	s.products[p.ID] = *p
	return nil
}

func (s *memProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := s.products[id]; !ok {
		return errNotFound("Product")
	}
	delete(s.products, id)
	return nil
}

type memCartStore struct {
	carts map[primitive.ObjectID]Cart
	// failUpdate simulates a store outage on writes, for the best-effort
	// cart-clear path.
	failUpdate bool
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: map[primitive.ObjectID]Cart{}}
}

func (s *memCartStore) List(ctx context.Context, userID *primitive.ObjectID) ([]Cart, error) {
	out := []Cart{}
	for _, cart := range s.carts {
		if userID == nil || cart.UserID == *userID {
			out = append(out, cart)
		}
	}
	return out, nil
}

func (s *memCartStore) Get(ctx context.Context, id primitive.ObjectID) (*Cart, error) {
	cart, ok := s.carts[id]
	if !ok {
		return nil, errNotFound("Cart")
	}
	return &cart, nil
}

func (s *memCartStore) GetByUser(ctx context.Context, userID primitive.ObjectID) (*Cart, error) {
	for _, cart := range s.carts {
		if cart.UserID == userID {
			return &cart, nil
		}
	}
	return nil, errNotFound("Cart")
}

func (s *memCartStore) Insert(ctx context.Context, cart *Cart) error {
	now := time.Now().UTC()
	cart.ID = primitive.NewObjectID()
	cart.CreatedAt, cart.UpdatedAt = now, now
	s.carts[cart.ID] = *cart
	return nil
}

func (s *memCartStore) Update(ctx context.Context, cart *Cart) error {
	if s.failUpdate {
		return errors.New("store unavailable")
	}
	if _, ok := s.carts[cart.ID]; !ok {
		return errNotFound("Cart")
	}
	cart.UpdatedAt = time.Now().UTC()
	s.carts[cart.ID] = *cart
	return nil
}

func (s *memCartStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := s.carts[id]; !ok {
		return errNotFound("Cart")
	}
	delete(s.carts, id)
	return nil
}

type memOrderStore struct {
	orders map[primitive.ObjectID]Order
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{orders: map[primitive.ObjectID]Order{}}
}

func (s *memOrderStore) List(ctx context.Context, userID *primitive.ObjectID) ([]Order, error) {
	out := []Order{}
	for _, o := range s.orders {
		if userID == nil || o.UserID == *userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *memOrderStore) Get(ctx context.Context, id primitive.ObjectID) (*Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, errNotFound("Order")
	}
	return &o, nil
}

func (s *memOrderStore) Insert(ctx context.Context, o *Order) error {
	now := time.Now().UTC()
	o.ID = primitive.NewObjectID()
	o.CreatedAt, o.UpdatedAt = now, now
	s.orders[o.ID] = *o
	return nil
}

func (s *memOrderStore) Update(ctx context.Context, o *Order) error {
	if _, ok := s.orders[o.ID]; !ok {
		return errNotFound("Order")
	}
	o.UpdatedAt = time.Now().UTC()
	s.orders[o.ID] = *o
	return nil
}

func (s *memOrderStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := s.orders[id]; !ok {
		return errNotFound("Order")
	}
	delete(s.orders, id)
	return nil
}

func newMemStores() stores {
	return stores{
		users:    newMemUserStore(),
		products: newMemProductStore(),
		carts:    newMemCartStore(),
		orders:   newMemOrderStore(),
	}
}
