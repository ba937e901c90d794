package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"

	"github.com/anilvs/casetrack/internal/model"
)

type transitionRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (s *Server) transition(c *gin.Context) {
	complaintID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad complaint id", "field": "id"})
		return
	}
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	officerID, _ := userID(c)

	update, err := s.cases.Transition(c.Request.Context(), complaintID, model.Status(req.Status), officerID, req.Notes)
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, caseUpdateDTO{
		ID:        update.ID.String(),
		CaseID:    update.CaseID.String(),
		OfficerID: update.OfficerID.String(),
		Status:    string(update.Status),
		Notes:     update.Notes,
		CreatedAt: update.CreatedAt,
	})
}

type registerCaseRequest struct {
	ReportRef string `json:"report_ref"`
}

func (s *Server) registerCase(c *gin.Context) {
	complaintID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad complaint id", "field": "id"})
		return
	}
	var req registerCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	officerID, _ := userID(c)

	registered, err := s.cases.Register(c.Request.Context(), complaintID, officerID, req.ReportRef)
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCaseDTO(registered))
}

func (s *Server) getCase(c *gin.Context) {
	complaintID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad complaint id", "field": "id"})
		return
	}
	registered, err := s.cases.Get(c.Request.Context(), complaintID)
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCaseDTO(registered))
}

func (s *Server) listCaseUpdates(c *gin.Context) {
	complaintID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad complaint id", "field": "id"})
		return
	}
	updates, err := s.cases.Updates(c.Request.Context(), complaintID)
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": toCaseUpdateDTOs(updates)})
}
