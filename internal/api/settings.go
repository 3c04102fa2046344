package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// settingsRequest is the body of PUT /settings. Omitted fields are unchanged.
type settingsRequest struct {
	DarkTheme  *bool    `json:"dark_theme"`
	FontFamily *string  `json:"font_family"`
	FontSize   *float64 `json:"font_size"`
}

func (s *Server) getSettings(c *gin.Context) {
	st, err := s.svc.Settings(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) updateSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	st, err := s.svc.Settings(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	if req.DarkTheme != nil {
		st.DarkTheme = *req.DarkTheme
	}
	if req.FontFamily != nil {
		st.FontFamily = *req.FontFamily
	}
	if req.FontSize != nil {
		st.FontSize = *req.FontSize
	}

	saved, err := s.svc.UpdateSettings(c.Request.Context(), st)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}
