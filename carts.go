// carts.go

package main

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// cartService owns every write to the carts collection. Totals are derived
// from live product prices at write time and are never trusted from the
// caller or recomputed on read.
type cartService struct {
	carts    cartStore
	products productStore
	log      *zap.Logger
}

// priceItems resolves every line against the products collection and returns
// the cart total. A single missing product rejects the whole payload, so no
// partial cart is ever persisted.
func (svc *cartService) priceItems(ctx context.Context, items []CartItem) (float64, error) {
	var total float64
	for _, item := range items {
		product, err := svc.products.Get(ctx, item.ProductID)
		if err != nil {
			var nf *notFoundError
			if errors.As(err, &nf) {
				return 0, errRefNotFound("Product", item.ProductID.Hex())
			}
			return 0, err
		}
		total += product.Price * float64(item.Quantity)
	}
	return total, nil
}

func (svc *cartService) Create(ctx context.Context, userID primitive.ObjectID, items []CartItem) (*Cart, error) {
	total, err := svc.priceItems(ctx, items)
	if err != nil {
		return nil, err
	}
	cart := &Cart{
		UserID:     userID,
		Items:      items,
		TotalPrice: total,
		Status:     CartActive,
	}
	if err := svc.carts.Insert(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Replace swaps the item list wholesale; there is no merge with what the
// cart held before.
func (svc *cartService) Replace(ctx context.Context, cartID, userID primitive.ObjectID, items []CartItem) (*Cart, error) {
	cart, err := svc.carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	total, err := svc.priceItems(ctx, items)
	if err != nil {
		return nil, err
	}
	cart.UserID = userID
	cart.Items = items
	cart.TotalPrice = total
	if err := svc.carts.Update(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (svc *cartService) Clear(ctx context.Context, userID primitive.ObjectID) (*Cart, error) {
	cart, err := svc.carts.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Items = []CartItem{}
	cart.TotalPrice = 0
	if err := svc.carts.Update(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ----- Handlers -----

type cartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
}

type cartRequest struct {
	UserID string            `json:"userId" binding:"required"`
	Items  []cartItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (req *cartRequest) toItems() (primitive.ObjectID, []CartItem, error) {
	userID, err := parseObjectID("userId", req.UserID)
	if err != nil {
		return primitive.NilObjectID, nil, err
	}
	items := make([]CartItem, 0, len(req.Items))
	for _, it := range req.Items {
		productID, err := parseObjectID("items.productId", it.ProductID)
		if err != nil {
			return primitive.NilObjectID, nil, err
		}
		items = append(items, CartItem{ProductID: productID, Quantity: it.Quantity})
	}
	return userID, items, nil
}

func (s *server) listCarts(c *gin.Context) {
	var userID *primitive.ObjectID
	if raw := c.Query("userId"); raw != "" {
		id, err := parseObjectID("userId", raw)
		if err != nil {
			respondError(c, err)
			return
		}
		userID = &id
	}
	carts, err := s.carts.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, 200, "", carts)
}

func (s *server) getCart(c *gin.Context) {
	id, err := parseObjectID("id", c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	cart, err := s.carts.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, 200, "", cart)
}

func (s *server) createCart(c *gin.Context) {
	var req cartRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	userID, items, err := req.toItems()
	if err != nil {
		respondError(c, err)
		return
	}
	cart, err := s.cartSvc.Create(c.Request.Context(), userID, items)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, 201, "Cart created successfully", cart)
}

func (s *server) updateCart(c *gin.Context) {
	id, err := parseObjectID("id", c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	var req cartRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	userID, items, err := req.toItems()
	if err != nil {
		respondError(c, err)
		return
	}
	cart, err := s.cartSvc.Replace(c.Request.Context(), id, userID, items)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, 200, "Cart updated successfully", cart)
}

func (s *server) deleteCart(c *gin.Context) {
	id, err := parseObjectID("id", c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := s.carts.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, 200, "Cart deleted successfully", nil)
}

func (s *server) clearCart(c *gin.Context) {
	userID, err := parseObjectID("userId", c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	cart, err := s.cartSvc.Clear(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, 200, "Cart cleared successfully", cart)
}
