package store

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/buddyai-core/server/internal/model"
	logx "github.com/buddyai-core/server/pkg/logger"
)

// OrderStore persists placed orders.
type OrderStore struct {
	c collection
}

func NewOrderStore(rdb redis.Cmdable) *OrderStore {
	return &OrderStore{c: newCollection(rdb, "orders")}
}

// PlaceOrderParams is the input for placing an order.
type PlaceOrderParams struct {
	UserID          int
	OrderItems      []model.OrderItem
	PaymentMethod   string
	DeliveryAddress string
}

// Place assigns the next sequential order id (starting above 10000), totals
// the item prices and stores the order with status "Ordered".
func (s *OrderStore) Place(ctx context.Context, params PlaceOrderParams) (*model.Order, error) {
	orders, err := decodeAll[model.Order](ctx, &s.c)
	if err != nil {
		return nil, err
	}
	orderID := 10000
	for _, o := range orders {
		if o.OrderID > orderID {
			orderID = o.OrderID
		}
	}
	orderID++

	var total float64
	for _, item := range params.OrderItems {
		total += item.TotalPrice
	}

	now := time.Now()
	order := model.Order{
		ID:              uuid.NewString(),
		OrderID:         orderID,
		UserID:          params.UserID,
		OrderItems:      params.OrderItems,
		TotalAmount:     total,
		PaymentMethod:   params.PaymentMethod,
		DeliveryAddress: params.DeliveryAddress,
		Status:          "Ordered",
		OrderDate:       now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.c.put(ctx, strconv.Itoa(orderID), order); err != nil {
		return nil, err
	}

	logx.Info().Int("orderID", orderID).Float64("total", total).Msg("order placed")
	return &order, nil
}

func (s *OrderStore) All(ctx context.Context) ([]model.Order, error) {
	orders, err := decodeAll[model.Order](ctx, &s.c)
	if err != nil {
		return nil, err
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].OrderID < orders[j].OrderID })
	return orders, nil
}

// GetByOrderID returns nil when the order does not exist.
func (s *OrderStore) GetByOrderID(ctx context.Context, orderID int) (*model.Order, error) {
	var o model.Order
	ok, err := s.c.get(ctx, strconv.Itoa(orderID), &o)
	if err != nil || !ok {
		return nil, err
	}
	return &o, nil
}
