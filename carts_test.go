// carts_test.go

package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestCartService() (*cartService, *memCartStore, *memProductStore) {
	carts := newMemCartStore()
	products := newMemProductStore()
	return &cartService{carts: carts, products: products, log: zap.NewNop()}, carts, products
}

func seedProduct(t *testing.T, products *memProductStore, name string, price float64, stock int) Product {
	t.Helper()
	p := Product{Name: name, Price: price, Stock: stock}
	p.RefreshAvailability()
	require.NoError(t, products.Insert(context.Background(), &p))
	return p
}

func TestCreateCartComputesTotalFromLivePrices(t *testing.T) {
	svc, _, products := newTestCartService()
	ctx := context.Background()

	tea := seedProduct(t, products, "Tea", 10, 5)
	jar := seedProduct(t, products, "Jar", 2.5, 3)

	userID := primitive.NewObjectID()
	cart, err := svc.Create(ctx, userID, []CartItem{
		{ProductID: tea.ID, Quantity: 2},
		{ProductID: jar.ID, Quantity: 4},
	})
	require.NoError(t, err)

	assert.Equal(t, 30.0, cart.TotalPrice)
	assert.Equal(t, CartActive, cart.Status)
	assert.Equal(t, userID, cart.UserID)
	assert.False(t, cart.ID.IsZero())
}

func TestCreateCartAllowsDuplicateProductLines(t *testing.T) {
	svc, _, products := newTestCartService()
	ctx := context.Background()

	tea := seedProduct(t, products, "Tea", 10, 5)

	cart, err := svc.Create(ctx, primitive.NewObjectID(), []CartItem{
		{ProductID: tea.ID, Quantity: 1},
		{ProductID: tea.ID, Quantity: 2},
	})
	require.NoError(t, err)

	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 30.0, cart.TotalPrice)
}

func TestCreateCartMissingProductPersistsNothing(t *testing.T) {
	svc, carts, products := newTestCartService()
	ctx := context.Background()

	tea := seedProduct(t, products, "Tea", 10, 5)
	missing := primitive.NewObjectID()

	_, err := svc.Create(ctx, primitive.NewObjectID(), []CartItem{
		{ProductID: tea.ID, Quantity: 1},
		{ProductID: missing, Quantity: 1},
	})

	var nf *notFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Product", nf.Entity)
	assert.Equal(t, missing.Hex(), nf.Ref)
	assert.Empty(t, carts.carts, "no partial cart may be persisted")
}

func TestReplaceCartSwapsItemsWholesale(t *testing.T) {
	svc, _, products := newTestCartService()
	ctx := context.Background()

	tea := seedProduct(t, products, "Tea", 10, 5)
	jar := seedProduct(t, products, "Jar", 4, 3)

	userID := primitive.NewObjectID()
	cart, err := svc.Create(ctx, userID, []CartItem{{ProductID: tea.ID, Quantity: 3}})
	require.NoError(t, err)
	require.Equal(t, 30.0, cart.TotalPrice)

	replaced, err := svc.Replace(ctx, cart.ID, userID, []CartItem{{ProductID: jar.ID, Quantity: 2}})
	require.NoError(t, err)

	assert.Len(t, replaced.Items, 1)
	assert.Equal(t, jar.ID, replaced.Items[0].ProductID)
	assert.Equal(t, 8.0, replaced.TotalPrice)
}

func TestReplaceCartUsesCurrentPriceNotCreationPrice(t *testing.T) {
	svc, _, products := newTestCartService()
	ctx := context.Background()

	tea := seedProduct(t, products, "Tea", 10, 5)

	userID := primitive.NewObjectID()
	cart, err := svc.Create(ctx, userID, []CartItem{{ProductID: tea.ID, Quantity: 2}})
	require.NoError(t, err)
	require.Equal(t, 20.0, cart.TotalPrice)

	tea.Price = 15
	require.NoError(t, products.Update(ctx, &tea))

	replaced, err := svc.Replace(ctx, cart.ID, userID, []CartItem{{ProductID: tea.ID, Quantity: 2}})
	require.NoError(t, err)
	assert.Equal(t, 30.0, replaced.TotalPrice)
}

func TestReplaceCartUnknownIDReturnsNotFound(t *testing.T) {
	svc, _, products := newTestCartService()
	tea := seedProduct(t, products, "Tea", 10, 5)

	_, err := svc.Replace(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(),
		[]CartItem{{ProductID: tea.ID, Quantity: 1}})

	var nf *notFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Cart", nf.Entity)
}

func TestClearCartEmptiesItemsAndResetsTotal(t *testing.T) {
	svc, carts, products := newTestCartService()
	ctx := context.Background()

	tea := seedProduct(t, products, "Tea", 10, 5)
	userID := primitive.NewObjectID()
	cart, err := svc.Create(ctx, userID, []CartItem{{ProductID: tea.ID, Quantity: 2}})
	require.NoError(t, err)

	cleared, err := svc.Clear(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, cleared.Items)
	assert.Equal(t, 0.0, cleared.TotalPrice)

	stored, err := carts.Get(ctx, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Items)
	assert.Equal(t, 0.0, stored.TotalPrice)
}

func TestClearCartNoCartForUserReturnsNotFound(t *testing.T) {
	svc, _, _ := newTestCartService()

	_, err := svc.Clear(context.Background(), primitive.NewObjectID())

	var nf *notFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Cart", nf.Entity)
}

func TestCartTotalNotRecomputedOnRead(t *testing.T) {
	svc, carts, products := newTestCartService()
	ctx := context.Background()

	tea := seedProduct(t, products, "Tea", 10, 5)
	userID := primitive.NewObjectID()
	cart, err := svc.Create(ctx, userID, []CartItem{{ProductID: tea.ID, Quantity: 2}})
	require.NoError(t, err)

	tea.Price = 99
	require.NoError(t, products.Update(ctx, &tea))

	stored, err := carts.Get(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, 20.0, stored.TotalPrice, "reads return the last persisted total")
}
