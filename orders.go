// orders.go

package main

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// orderService owns order placement and status updates. Line-item prices are
// a snapshot captured at creation and never re-derived from live products,
// so historical orders keep their billing even when prices change.
type orderService struct {
	orders orderStore
	carts  cartStore
	log    *zap.Logger
}

// Place validates the supplied total against the snapshot items, persists
// the order, then clears the user's cart. The clear is best effort: the
// order is already durable, so a clear failure is logged and swallowed.
func (svc *orderService) Place(ctx context.Context, o *Order) (*Order, error) {
	if o.TotalAmount != o.ItemsTotal() {
		return nil, errValidation("Total amount mismatch! Please check item prices and quantities.")
	}
	o.OrderStatus = OrderProcessing
	o.PaymentStatus = PaymentPending
	o.OrderDate = time.Now().UTC()
	if err := svc.orders.Insert(ctx, o); err != nil {
		return nil, err
	}
	svc.clearUserCart(ctx, o.UserID)
	return o, nil
}

func (svc *orderService) clearUserCart(ctx context.Context, userID primitive.ObjectID) {
	cart, err := svc.carts.GetByUser(ctx, userID)
	if err != nil {
		var nf *notFoundError
		if !errors.As(err, &nf) {
			svc.log.Warn("cart clear after order placement failed",
				zap.String("userId", userID.Hex()), zap.Error(err))
		}
		return
	}
	cart.Items = []CartItem{}
	cart.TotalPrice = 0
	if err := svc.carts.Update(ctx, cart); err != nil {
		svc.log.Warn("cart clear after order placement failed",
			zap.String("userId", userID.Hex()), zap.Error(err))
	}
}

type orderPatch struct {
	OrderStatus   string
	PaymentStatus string
	PaymentMethod string
}

// Update is restricted to the status and payment fields; items and totals
// are immutable once placed.
func (svc *orderService) Update(ctx context.Context, id primitive.ObjectID, patch orderPatch) (*Order, error) {
	order, err := svc.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.OrderStatus != "" {
		order.OrderStatus = patch.OrderStatus
	}
	if patch.PaymentStatus != "" {
		order.PaymentStatus = patch.PaymentStatus
	}
	if patch.PaymentMethod != "" {
		order.PaymentMethod = patch.PaymentMethod
	}
	if err := svc.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (svc *orderService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]Order, error) {
	orders, err := svc.orders.List(ctx, &userID)
	if err != nil {
		return nil, err
	}
	// No orders and no such user deliberately map to the same 404.
	if len(orders) == 0 {
		return nil, errRefNotFound("Orders for user", userID.Hex())
	}
	return orders, nil
}

// ----- Handlers -----

type orderItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gte=1"`
	Price     float64 `json:"price" binding:"gte=0"`
}

type orderRequest struct {
	UserID          string             `json:"userId" binding:"required"`
	Items           []orderItemRequest `json:"items" binding:"required,min=1,dive"`
	TotalAmount     float64            `json:"totalAmount" binding:"required,gt=0"`
	PaymentMethod   string             `json:"paymentMethod" binding:"required"`
	ShippingAddress Address            `json:"shippingAddress"`
}

type orderUpdateRequest struct {
	OrderStatus   string `json:"orderStatus"`
	PaymentStatus string `json:"paymentStatus"`
	PaymentMethod string `json:"paymentMethod"`
}

func (s *server) listOrders(c *gin.Context) {
	var userID *primitive.ObjectID
	if raw := c.Query("userId"); raw != "" {
		id, err := parseObjectID("userId", raw)
		if err != nil {
			respondError(c, err)
			return
		}
		userID = &id
	}
	orders, err := s.orders.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, 200, "", orders)
}

func (s *server) getOrder(c *gin.Context) {
	id, err := parseObjectID("id", c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	order, err := s.orders.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, 200, "", order)
}

func (s *server) createOrder(c *gin.Context) {
	var req orderRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if !validPaymentMethod(req.PaymentMethod) {
		respondError(c, errValidation("Validation failed", fieldError{
			Field:   "paymentMethod",
			Message: "must be one of: card, cash on delivery, bank transfer",
		}))
		return
	}
	userID, err := parseObjectID("userId", req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	items := make([]OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		productID, err := parseObjectID("items.productId", it.ProductID)
		if err != nil {
			respondError(c, err)
			return
		}
		items = append(items, OrderItem{ProductID: productID, Quantity: it.Quantity, Price: it.Price})
	}
	order := &Order{
		UserID:          userID,
		Items:           items,
		TotalAmount:     req.TotalAmount,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	}
	placed, err := s.orderSvc.Place(c.Request.Context(), order)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, 201, "Order placed successfully", placed)
}

func (s *server) updateOrder(c *gin.Context) {
	id, err := parseObjectID("id", c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	var req orderUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	var fields []fieldError
	if req.OrderStatus != "" && !validOrderStatus(req.OrderStatus) {
		fields = append(fields, fieldError{Field: "orderStatus", Message: "must be one of: processing, shipped, delivered, cancelled"})
	}
	if req.PaymentStatus != "" && !validPaymentStatus(req.PaymentStatus) {
		fields = append(fields, fieldError{Field: "paymentStatus", Message: "must be one of: pending, paid, failed"})
	}
	if req.PaymentMethod != "" && !validPaymentMethod(req.PaymentMethod) {
		fields = append(fields, fieldError{Field: "paymentMethod", Message: "must be one of: card, cash on delivery, bank transfer"})
	}
	if len(fields) > 0 {
		respondError(c, errValidation("Validation failed", fields...))
		return
	}
	order, err := s.orderSvc.Update(c.Request.Context(), id, orderPatch{
		OrderStatus:   req.OrderStatus,
		PaymentStatus: req.PaymentStatus,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, 200, "Order updated successfully", order)
}

func (s *server) deleteOrder(c *gin.Context) {
	id, err := parseObjectID("id", c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := s.orders.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, 200, "Order deleted successfully", nil)
}

func (s *server) listUserOrders(c *gin.Context) {
	userID, err := parseObjectID("userId", c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	orders, err := s.orderSvc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, 200, "", orders)
}
