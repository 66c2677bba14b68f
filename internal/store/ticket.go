package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/buddyai-core/server/internal/model"
	logx "github.com/buddyai-core/server/pkg/logger"
)

const ticketResolution = "Thank you for reporting. Our team will review and get back to you within 24 hours."

// TicketStore persists support tickets.
type TicketStore struct {
	c collection
}

func NewTicketStore(rdb redis.Cmdable) *TicketStore {
	return &TicketStore{c: newCollection(rdb, "support_tickets")}
}

// CreateTicketParams is the input for reporting an issue against an order.
type CreateTicketParams struct {
	OrderID           string
	UserID            int
	IssueType         string
	SelectedItemNames []string
	ItemsCount        int
	Comment           string
	Photos            []model.PhotoMetadata
}

// Create stores a ticket with an id derived from the order and the number of
// tickets already filed against it. Tickets auto-resolve with a canned
// acknowledgement until a human workflow exists.
func (s *TicketStore) Create(ctx context.Context, params CreateTicketParams) (*model.SupportTicket, error) {
	count, err := s.CountByOrder(ctx, params.OrderID)
	if err != nil {
		return nil, err
	}
	ticketID := fmt.Sprintf("TKT-%s-%d", params.OrderID, count+1)

	photos := params.Photos
	if photos == nil {
		photos = []model.PhotoMetadata{}
	}

	now := time.Now()
	ticket := model.SupportTicket{
		ID:                uuid.NewString(),
		TicketID:          ticketID,
		OrderID:           params.OrderID,
		UserID:            params.UserID,
		IssueType:         params.IssueType,
		SelectedItemNames: params.SelectedItemNames,
		ItemsCount:        params.ItemsCount,
		Comment:           params.Comment,
		Photos:            photos,
		PhotoCount:        len(photos),
		Status:            "resolved",
		Resolution:        ticketResolution,
		CreatedAt:         now,
		UpdatedAt:         now,
		ResolvedAt:        now,
	}
	if err := s.c.put(ctx, ticketID, ticket); err != nil {
		return nil, err
	}

	logx.Info().Str("ticketID", ticketID).Str("orderID", params.OrderID).Msg("support ticket created")
	return &ticket, nil
}

// ByOrder lists an order's tickets, newest first.
func (s *TicketStore) ByOrder(ctx context.Context, orderID string) ([]model.SupportTicket, error) {
	return s.list(ctx, func(t model.SupportTicket) bool { return t.OrderID == orderID })
}

// ByUser lists a user's tickets, newest first.
func (s *TicketStore) ByUser(ctx context.Context, userID int) ([]model.SupportTicket, error) {
	return s.list(ctx, func(t model.SupportTicket) bool { return t.UserID == userID })
}

// CountByOrder counts tickets filed against an order.
func (s *TicketStore) CountByOrder(ctx context.Context, orderID string) (int64, error) {
	tickets, err := s.ByOrder(ctx, orderID)
	if err != nil {
		return 0, err
	}
	return int64(len(tickets)), nil
}

func (s *TicketStore) list(ctx context.Context, keep func(model.SupportTicket) bool) ([]model.SupportTicket, error) {
	all, err := decodeAll[model.SupportTicket](ctx, &s.c)
	if err != nil {
		return nil, err
	}
	out := make([]model.SupportTicket, 0, len(all))
	for _, t := range all {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
