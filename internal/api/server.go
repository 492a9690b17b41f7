package api

import (
	"net/http"

	"github.com/jgranda1999/agentic-sade/internal/api/middleware"
	"github.com/jgranda1999/agentic-sade/internal/audit"
	"github.com/jgranda1999/agentic-sade/internal/core"
	"github.com/jgranda1999/agentic-sade/internal/service"
)

type Server struct {
	auditor core.Auditor
	service *service.AdmissionService
}

func NewServer(svc *service.AdmissionService, auditor core.Auditor) *Server {
	if auditor == nil {
		auditor = audit.NewNoopAuditor()
	}
	return &Server{
		auditor: auditor,
		service: svc,
	}
}

func (s *Server) Routes(adminSigningKey []byte) http.Handler {
	mux := http.NewServeMux()

	// public routes
	mux.HandleFunc("GET "+HealthCheckRoute, s.handleHealth)
	mux.HandleFunc("GET "+InfoRoute, s.handleInfo)

	// decision route
	mux.HandleFunc("POST "+DecideEntryRoute, s.handleDecide)

	// admin routes
	adminMux := http.NewServeMux()
	adminMux.HandleFunc("GET "+ListAuditsRoute, s.handleAdminAudit)
	adminMux.HandleFunc("POST "+ReplayAuditRoute, s.handleReplay)
	mux.Handle(AuditParent, middleware.AdminAuth(adminSigningKey)(adminMux))

	return middleware.RecoverMiddleware(
		middleware.CorrelationIDMiddleware(
			middleware.LoggingMiddleware(
				mux)))
}
