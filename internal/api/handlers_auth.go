package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anilvs/casetrack/internal/model"
	"github.com/anilvs/casetrack/internal/service"
)

type registerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	District    string `json:"district"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	BadgeNumber string `json:"badge_number"`
	Department  string `json:"department"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	u, err := s.auth.Register(c.Request.Context(), service.RegisterUser{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		District:    req.District,
		Password:    req.Password,
		Role:        model.Role(req.Role),
		BadgeNumber: req.BadgeNumber,
		Department:  req.Department,
	})
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserDTO(u))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        userDTO   `json:"user"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	tokens, user, err := s.auth.LoginWithIP(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{
		AccessToken: tokens.AccessToken,
		ExpiresAt:   tokens.ExpiresAt,
		User:        toUserDTO(&user),
	})
}
