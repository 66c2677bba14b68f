package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buddyai-core/server/internal/chat"
	logx "github.com/buddyai-core/server/pkg/logger"
)

func (s *Server) handleChat(c *gin.Context) {
	var req chat.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	resp, err := s.chat.Chat(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			respondBadRequest(c, err.Error())
			return
		}
		logx.Error().Err(err).Msg("chat turn failed")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleQuickReply(c *gin.Context) {
	var req quickReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "question_type is required")
		return
	}

	resp, err := s.chat.QuickReply(c.Request.Context(), req.ConversationID, req.QuestionType)
	if err != nil {
		logx.Error().Err(err).Msg("quick reply failed")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGetConversation(c *gin.Context) {
	conv := s.chat.GetConversation(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, conv)
}

func (s *Server) handleDeleteConversation(c *gin.Context) {
	if err := s.chat.DeleteConversation(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "conversation deleted", nil)
}
