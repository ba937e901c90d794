package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) listLaws(c *gin.Context) {
	laws, err := s.laws.List(c.Request.Context())
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": toLawDTOs(laws)})
}

func (s *Server) searchLaws(c *gin.Context) {
	laws, err := s.laws.Search(c.Request.Context(), c.Query("q"), c.Query("category"))
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": toLawDTOs(laws)})
}

type suggestLawsRequest struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

func (s *Server) suggestLaws(c *gin.Context) {
	var req suggestLawsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	laws, err := s.laws.Suggest(c.Request.Context(), req.Text, req.Category)
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": toLawDTOs(laws)})
}
