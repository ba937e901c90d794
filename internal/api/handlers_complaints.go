package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anilvs/casetrack/internal/model"
	"github.com/anilvs/casetrack/internal/repository"
	"github.com/anilvs/casetrack/internal/service"
)

type submitComplaintRequest struct {
	CitizenName  string    `json:"citizen_name"`
	CitizenEmail string    `json:"citizen_email"`
	CitizenPhone string    `json:"citizen_phone"`
	CrimeType    string    `json:"crime_type"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	IncidentDate time.Time `json:"incident_date"`
}

func (s *Server) submitComplaint(c *gin.Context) {
	var req submitComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	in := service.SubmitComplaint{
		CitizenName:  req.CitizenName,
		CitizenEmail: req.CitizenEmail,
		CitizenPhone: req.CitizenPhone,
		CrimeType:    req.CrimeType,
		Description:  req.Description,
		Location:     req.Location,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		IncidentDate: req.IncidentDate,
	}
	// link the complaint to the account when the filer is logged in
	if id, ok := userID(c); ok {
		in.CitizenID = id
	}
	complaint, err := s.complaints.Submit(c.Request.Context(), in)
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toComplaintDTO(complaint))
}

func (s *Server) getComplaintByReference(c *gin.Context) {
	complaint, err := s.complaints.GetByReference(c.Request.Context(), c.Param("ref"))
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, toComplaintDTO(complaint))
}

func (s *Server) searchComplaints(c *gin.Context) {
	f := repository.SearchFilter{
		Query:     c.Query("q"),
		Severity:  model.Severity(c.Query("severity")),
		Status:    model.Status(c.Query("status")),
		CrimeType: c.Query("crime_type"),
		Location:  c.Query("location"),
	}
	var err error
	if f.FiledFrom, err = parseTimeParam(c.Query("filed_from")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filed_from: bad timestamp", "field": "filed_from"})
		return
	}
	if f.FiledTo, err = parseTimeParam(c.Query("filed_to")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filed_to: bad timestamp", "field": "filed_to"})
		return
	}
	f.Limit = intParam(c, "limit", 50)
	f.Offset = intParam(c, "offset", 0)

	// citizens only ever see their own complaints
	if role, _ := userRole(c); role == model.RoleCitizen {
		id, _ := userID(c)
		f.CitizenID = id
	}

	items, total, err := s.complaints.Search(c.Request.Context(), f)
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":  toComplaintDTOs(items),
		"total":  total,
		"limit":  f.Limit,
		"offset": f.Offset,
	})
}

func (s *Server) listPending(c *gin.Context) {
	items, err := s.complaints.ListPending(c.Request.Context())
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": toComplaintDTOs(items)})
}

func (s *Server) statistics(c *gin.Context) {
	from, err := parseTimeParam(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from: bad timestamp", "field": "from"})
		return
	}
	to, err := parseTimeParam(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to: bad timestamp", "field": "to"})
		return
	}
	var fromT, toT time.Time
	if from != nil {
		fromT = *from
	}
	if to != nil {
		toT = *to
	}
	stats, err := s.complaints.Statistics(c.Request.Context(), fromT, toT)
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// parseTimeParam accepts RFC3339 timestamps or bare dates. Empty means unset.
func parseTimeParam(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func intParam(c *gin.Context, name string, def int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
