package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	errx "github.com/buddyai-core/server/internal/core/error"
	"github.com/buddyai-core/server/internal/model"
	"github.com/buddyai-core/server/internal/store"
)

// envelope is the response shape for the CRUD endpoints.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

func respondCreated(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, envelope{Success: true, Message: message, Data: data})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, envelope{Success: false, Message: message})
}

func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, envelope{Success: false, Message: message})
}

// respondError maps domain errors onto HTTP statuses, hiding internal detail.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrUserNotFound), errors.Is(err, store.ErrOrderNotFound):
		respondNotFound(c, err.Error())
		return
	case errors.Is(err, store.ErrOrderOwnership):
		c.JSON(http.StatusForbidden, envelope{Success: false, Message: err.Error()})
		return
	}

	var appErr *errx.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, envelope{Success: false, Message: appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, envelope{Success: false, Message: errx.SystemErrorMessage})
}

type quickReplyRequest struct {
	ConversationID string `json:"conversation_id"`
	QuestionType   string `json:"question_type" binding:"required"`
}

type placeOrderRequest struct {
	UserID          int               `json:"user_id" binding:"required"`
	OrderItems      []model.OrderItem `json:"order_items" binding:"required"`
	PaymentMethod   string            `json:"payment_method"`
	DeliveryAddress string            `json:"delivery_address"`
}

type submitFeedbackRequest struct {
	UserID       int    `json:"user_id" binding:"required"`
	OrderID      *int   `json:"order_id"`
	Category     string `json:"category"`
	Subject      string `json:"subject"`
	Rating       int    `json:"rating"`
	Comments     string `json:"comments"`
	Channel      string `json:"channel"`
	AllowContact *bool  `json:"allow_contact"`
}

type createTicketRequest struct {
	OrderID           string                `json:"order_id" binding:"required"`
	UserID            int                   `json:"user_id"`
	IssueType         string                `json:"issue_type" binding:"required"`
	SelectedItemNames []string              `json:"selected_items"`
	ItemsCount        int                   `json:"items_count"`
	Comment           string                `json:"comment"`
	Photos            []model.PhotoMetadata `json:"photos"`
}

type updateImagesRequest struct {
	Mappings map[int]string `json:"mappings" binding:"required"`
}
