package store

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/buddyai-core/server/internal/model"
	logx "github.com/buddyai-core/server/pkg/logger"
)

var (
	// ErrUserNotFound rejects feedback from unknown users.
	ErrUserNotFound = fmt.Errorf("user not found")
	// ErrOrderNotFound rejects feedback against unknown orders.
	ErrOrderNotFound = fmt.Errorf("order not found")
	// ErrOrderOwnership rejects feedback against someone else's order.
	ErrOrderOwnership = fmt.Errorf("order does not belong to the specified user")
)

// FeedbackStore persists submitted feedback and validates its references.
type FeedbackStore struct {
	c      collection
	users  *UserStore
	orders *OrderStore
}

func NewFeedbackStore(rdb redis.Cmdable, users *UserStore, orders *OrderStore) *FeedbackStore {
	return &FeedbackStore{
		c:      newCollection(rdb, "feedback"),
		users:  users,
		orders: orders,
	}
}

// SubmitFeedbackParams is the input for submitting feedback.
type SubmitFeedbackParams struct {
	UserID       int
	OrderID      *int
	Category     string
	Subject      string
	Rating       int
	Comments     string
	Channel      string
	AllowContact *bool
}

// Submit validates the user (and order ownership when an order is named)
// before storing the feedback document.
func (s *FeedbackStore) Submit(ctx context.Context, params SubmitFeedbackParams) (*model.Feedback, error) {
	user, err := s.users.GetByUserID(ctx, params.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if params.OrderID != nil {
		order, err := s.orders.GetByOrderID(ctx, *params.OrderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, ErrOrderNotFound
		}
		if order.UserID != params.UserID {
			return nil, ErrOrderOwnership
		}
	}

	channel := params.Channel
	if channel == "" {
		channel = "web"
	}
	allowContact := false
	if params.AllowContact != nil {
		allowContact = *params.AllowContact
	}

	now := time.Now()
	feedback := model.Feedback{
		ID:           uuid.NewString(),
		FeedbackID:   int(now.UnixMilli() % int64(1<<31-1)),
		UserID:       params.UserID,
		OrderID:      params.OrderID,
		Category:     params.Category,
		Subject:      params.Subject,
		Rating:       params.Rating,
		Comments:     params.Comments,
		Channel:      channel,
		AllowContact: allowContact,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.c.put(ctx, strconv.Itoa(feedback.FeedbackID), feedback); err != nil {
		return nil, err
	}

	logx.Info().Int("feedbackID", feedback.FeedbackID).Int("userID", params.UserID).Msg("feedback submitted")
	return &feedback, nil
}

// ByUser lists a user's feedback, newest first, up to limit entries.
func (s *FeedbackStore) ByUser(ctx context.Context, userID, limit int) ([]model.Feedback, error) {
	return s.list(ctx, limit, func(f model.Feedback) bool { return f.UserID == userID })
}

// ByOrder lists an order's feedback, newest first, up to limit entries.
func (s *FeedbackStore) ByOrder(ctx context.Context, orderID, limit int) ([]model.Feedback, error) {
	return s.list(ctx, limit, func(f model.Feedback) bool {
		return f.OrderID != nil && *f.OrderID == orderID
	})
}

func (s *FeedbackStore) list(ctx context.Context, limit int, keep func(model.Feedback) bool) ([]model.Feedback, error) {
	all, err := decodeAll[model.Feedback](ctx, &s.c)
	if err != nil {
		return nil, err
	}
	out := make([]model.Feedback, 0, len(all))
	for _, f := range all {
		if keep(f) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
