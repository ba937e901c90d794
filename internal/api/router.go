package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/anilvs/casetrack/internal/service"
)

// Server wires application services into HTTP handlers.
type Server struct {
	auth       service.AuthService
	complaints service.ComplaintService
	cases      service.CaseService
	laws       service.LawService
	evidence   service.EvidenceService

	signKey []byte
	log     *zap.Logger
}

// New constructs the HTTP server facade.
func New(
	auth service.AuthService,
	complaints service.ComplaintService,
	cases service.CaseService,
	laws service.LawService,
	evidence service.EvidenceService,
	signKey []byte,
	log *zap.Logger,
) *Server {
	return &Server{
		auth:       auth,
		complaints: complaints,
		cases:      cases,
		laws:       laws,
		evidence:   evidence,
		signKey:    signKey,
		log:        log,
	}
}

// Router builds the route tree with logging and panic recovery applied globally.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(Recover(s.log), RequestLogger(s.log))

	apiGroup := r.Group("/api")

	auth := apiGroup.Group("/auth")
	auth.POST("/register", s.register)
	auth.POST("/login", s.login)

	// public: filing is open to unregistered citizens, lookup needs only the
	// reference number, and the law catalog is reference material
	apiGroup.POST("/complaints", OptionalAuth(s.signKey), s.submitComplaint)
	apiGroup.GET("/complaints/ref/:ref", s.getComplaintByReference)
	apiGroup.GET("/laws", s.listLaws)
	apiGroup.GET("/laws/search", s.searchLaws)
	apiGroup.POST("/laws/suggest", s.suggestLaws)

	authed := apiGroup.Group("", Auth(s.signKey))
	authed.GET("/complaints", s.searchComplaints)
	authed.GET("/complaints/:id/updates", s.listCaseUpdates)
	authed.GET("/complaints/:id/evidence", s.listEvidence)
	authed.POST("/complaints/:id/evidence", s.attachEvidence)

	officers := authed.Group("", RequireOfficer())
	officers.GET("/complaints/pending", s.listPending)
	officers.POST("/complaints/:id/transition", s.transition)
	officers.POST("/complaints/:id/case", s.registerCase)
	officers.GET("/complaints/:id/case", s.getCase)
	officers.GET("/stats", s.statistics)
	officers.DELETE("/evidence/:id", s.removeEvidence)

	return r
}
