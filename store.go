// store.go

package main

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store interfaces are the seam between the aggregate services and MongoDB.
// Each method is a single id-keyed round trip; a lookup miss comes back as a
// notFoundError naming the entity.

type userStore interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Insert(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type productStore interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Product, error)
	Insert(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type cartStore interface {
	List(ctx context.Context, userID *primitive.ObjectID) ([]Cart, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Cart, error)
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*Cart, error)
	Insert(ctx context.Context, cart *Cart) error
	Update(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type orderStore interface {
	List(ctx context.Context, userID *primitive.ObjectID) ([]Order, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Order, error)
	Insert(ctx context.Context, o *Order) error
	Update(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type stores struct {
	users    userStore
	products productStore
	carts    cartStore
	orders   orderStore
}

func newMongoStores(db *mongo.Database) stores {
	return stores{
		users:    &mongoUserStore{col: db.Collection("users")},
		products: &mongoProductStore{col: db.Collection("products")},
		carts:    &mongoCartStore{col: db.Collection("carts")},
		orders:   &mongoOrderStore{col: db.Collection("orders")},
	}
}

func byUserFilter(userID *primitive.ObjectID) bson.M {
	if userID == nil {
		return bson.M{}
	}
	return bson.M{"userId": *userID}
}

// ----- Users -----

type mongoUserStore struct {
	col *mongo.Collection
}

func (s *mongoUserStore) List(ctx context.Context) ([]User, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	users := []User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *mongoUserStore) Get(ctx context.Context, id primitive.ObjectID) (*User, error) {
	var u User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errNotFound("User")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *mongoUserStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errNotFound("User")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *mongoUserStore) Insert(ctx context.Context, u *User) error {
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	res, err := s.col.InsertOne(ctx, u)
	if err != nil {
		return err
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *mongoUserStore) Update(ctx context.Context, u *User) error {
	u.UpdatedAt = time.Now().UTC()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errNotFound("User")
	}
	return nil
}

func (s *mongoUserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errNotFound("User")
	}
	return nil
}

// ----- Products -----

type mongoProductStore struct {
	col *mongo.Collection
}

func (s *mongoProductStore) List(ctx context.Context) ([]Product, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	products := []Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *mongoProductStore) Get(ctx context.Context, id primitive.ObjectID) (*Product, error) {
	var p Product
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errNotFound("Product")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *mongoProductStore) Insert(ctx context.Context, p *Product) error {
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	res, err := s.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *mongoProductStore) Update(ctx context.Context, p *Product) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errNotFound("Product")
	}
	return nil
}

func (s *mongoProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errNotFound("Product")
	}
	return nil
}

// ----- Carts -----

type mongoCartStore struct {
	col *mongo.Collection
}

func (s *mongoCartStore) List(ctx context.Context, userID *primitive.ObjectID) ([]Cart, error) {
	cur, err := s.col.Find(ctx, byUserFilter(userID))
	if err != nil {
		return nil, err
	}
	carts := []Cart{}
	if err := cur.All(ctx, &carts); err != nil {
		return nil, err
	}
	return carts, nil
}

func (s *mongoCartStore) Get(ctx context.Context, id primitive.ObjectID) (*Cart, error) {
	var cart Cart
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errNotFound("Cart")
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *mongoCartStore) GetByUser(ctx context.Context, userID primitive.ObjectID) (*Cart, error) {
	var cart Cart
	err := s.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errNotFound("Cart")
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *mongoCartStore) Insert(ctx context.Context, cart *Cart) error {
	now := time.Now().UTC()
	cart.CreatedAt, cart.UpdatedAt = now, now
	res, err := s.col.InsertOne(ctx, cart)
	if err != nil {
		return err
	}
	cart.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *mongoCartStore) Update(ctx context.Context, cart *Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": cart.ID}, cart)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errNotFound("Cart")
	}
	return nil
}

func (s *mongoCartStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errNotFound("Cart")
	}
	return nil
}

// ----- Orders -----

type mongoOrderStore struct {
	col *mongo.Collection
}

func (s *mongoOrderStore) List(ctx context.Context, userID *primitive.ObjectID) ([]Order, error) {
	cur, err := s.col.Find(ctx, byUserFilter(userID))
	if err != nil {
		return nil, err
	}
	orders := []Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *mongoOrderStore) Get(ctx context.Context, id primitive.ObjectID) (*Order, error) {
	var o Order
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errNotFound("Order")
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *mongoOrderStore) Insert(ctx context.Context, o *Order) error {
	now := time.Now().UTC()
	o.CreatedAt, o.UpdatedAt = now, now
	res, err := s.col.InsertOne(ctx, o)
	if err != nil {
		return err
	}
	o.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *mongoOrderStore) Update(ctx context.Context, o *Order) error {
	o.UpdatedAt = time.Now().UTC()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": o.ID}, o)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errNotFound("Order")
	}
	return nil
}

func (s *mongoOrderStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errNotFound("Order")
	}
	return nil
}
