package server

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// handleGetProfile serves the default user's profile. When no profile exists
// yet, a guest placeholder keeps the frontend functional.
func (s *Server) handleGetProfile(c *gin.Context) {
	userID := s.cfg.DefaultUserID
	if v := c.Query("userId"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondBadRequest(c, "user id must be a number")
			return
		}
		userID = n
	}

	user, err := s.users.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		respondOK(c, "profile fetched", gin.H{
			"user_id":      userID,
			"full_name":    "Guest User",
			"phone_number": "+91 1234567890",
		})
		return
	}
	respondOK(c, "profile fetched", user)
}
