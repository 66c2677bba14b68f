package server

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/buddyai-core/server/internal/store"
)

func (s *Server) handleCreateTicket(c *gin.Context) {
	var req createTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "order_id and issue_type are required")
		return
	}

	userID := req.UserID
	if userID == 0 {
		userID = s.cfg.DefaultUserID
	}

	ticket, err := s.tickets.Create(c.Request.Context(), store.CreateTicketParams{
		OrderID:           req.OrderID,
		UserID:            userID,
		IssueType:         req.IssueType,
		SelectedItemNames: req.SelectedItemNames,
		ItemsCount:        req.ItemsCount,
		Comment:           req.Comment,
		Photos:            req.Photos,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "support ticket created", ticket)
}

func (s *Server) handleTicketsByOrder(c *gin.Context) {
	tickets, err := s.tickets.ByOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "support tickets fetched", tickets)
}

func (s *Server) handleTicketCountByOrder(c *gin.Context) {
	count, err := s.tickets.CountByOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "support ticket count fetched", gin.H{"count": count})
}

func (s *Server) handleTicketsByUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		respondBadRequest(c, "user id must be a number")
		return
	}

	tickets, err := s.tickets.ByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "support tickets fetched", tickets)
}
