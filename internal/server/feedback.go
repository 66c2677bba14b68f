package server

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/buddyai-core/server/internal/store"
)

const defaultFeedbackLimit = 20

func (s *Server) handleSubmitFeedback(c *gin.Context) {
	var req submitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "user_id is required")
		return
	}

	feedback, err := s.feedback.Submit(c.Request.Context(), store.SubmitFeedbackParams{
		UserID:       req.UserID,
		OrderID:      req.OrderID,
		Category:     req.Category,
		Subject:      req.Subject,
		Rating:       req.Rating,
		Comments:     req.Comments,
		Channel:      req.Channel,
		AllowContact: req.AllowContact,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "feedback submitted", feedback)
}

func (s *Server) handleFeedbackByUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		respondBadRequest(c, "user id must be a number")
		return
	}

	feedback, err := s.feedback.ByUser(c.Request.Context(), userID, feedbackLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "feedback fetched", feedback)
}

func (s *Server) handleFeedbackByOrder(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("orderId"))
	if err != nil {
		respondBadRequest(c, "order id must be a number")
		return
	}

	feedback, err := s.feedback.ByOrder(c.Request.Context(), orderID, feedbackLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "feedback fetched", feedback)
}

func feedbackLimit(c *gin.Context) int {
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultFeedbackLimit
}
