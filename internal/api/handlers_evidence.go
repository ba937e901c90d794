package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"

	"github.com/anilvs/casetrack/internal/service"
)

func (s *Server) attachEvidence(c *gin.Context) {
	complaintID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad complaint id", "field": "id"})
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file part required", "field": "file"})
		return
	}
	f, err := header.Open()
	if err != nil {
		abortError(c, err)
		return
	}
	defer f.Close()

	uploadedBy := ""
	if id, ok := userID(c); ok {
		uploadedBy = id.String()
	}
	e, err := s.evidence.Attach(c.Request.Context(), service.AttachEvidence{
		ComplaintID: complaintID,
		FileName:    header.Filename,
		Description: c.PostForm("description"),
		UploadedBy:  uploadedBy,
		Size:        header.Size,
		Content:     f,
	})
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toEvidenceDTO(e))
}

func (s *Server) listEvidence(c *gin.Context) {
	complaintID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad complaint id", "field": "id"})
		return
	}
	items, err := s.evidence.List(c.Request.Context(), complaintID)
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": toEvidenceDTOs(items)})
}

func (s *Server) removeEvidence(c *gin.Context) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad evidence id", "field": "id"})
		return
	}
	if err := s.evidence.Remove(c.Request.Context(), id); err != nil {
		abortError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
