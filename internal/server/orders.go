package server

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/buddyai-core/server/internal/store"
)

func (s *Server) handlePlaceOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "user_id and order_items are required")
		return
	}
	if len(req.OrderItems) == 0 {
		respondBadRequest(c, "order_items must not be empty")
		return
	}

	order, err := s.orders.Place(c.Request.Context(), store.PlaceOrderParams{
		UserID:          req.UserID,
		OrderItems:      req.OrderItems,
		PaymentMethod:   req.PaymentMethod,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "order placed", order)
}

func (s *Server) handleListOrders(c *gin.Context) {
	orders, err := s.orders.All(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "orders fetched", orders)
}

func (s *Server) handleGetOrder(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("orderId"))
	if err != nil {
		respondBadRequest(c, "order id must be a number")
		return
	}

	order, err := s.orders.GetByOrderID(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	if order == nil {
		respondNotFound(c, "order not found")
		return
	}
	respondOK(c, "order fetched", order)
}

func (s *Server) handleGetOrderItems(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("orderId"))
	if err != nil {
		respondBadRequest(c, "order id must be a number")
		return
	}

	order, err := s.orders.GetByOrderID(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	if order == nil {
		respondNotFound(c, "order not found")
		return
	}
	respondOK(c, "order items fetched", order.OrderItems)
}
