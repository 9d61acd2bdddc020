package http

import (
	"net/http"

	"cronosflow/internal/delivery/http/handler"
	"cronosflow/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router           *mux.Router
	assistantHandler *handler.AssistantHandler
	licenseHandler   *handler.LicenseHandler
	webhookHandler   *handler.WebhookHandler
	backupHandler    *handler.BackupHandler
	corsMiddleware   *middleware.CORSMiddleware
}

func NewRouter(
	assistantHandler *handler.AssistantHandler,
	licenseHandler *handler.LicenseHandler,
	webhookHandler *handler.WebhookHandler,
	backupHandler *handler.BackupHandler,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:           mux.NewRouter(),
		assistantHandler: assistantHandler,
		licenseHandler:   licenseHandler,
		webhookHandler:   webhookHandler,
		backupHandler:    backupHandler,
		corsMiddleware:   corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// Liveness probe
	r.router.HandleFunc("/", r.liveness).Methods(http.MethodGet)

	api := r.router.PathPrefix("/api").Subrouter()

	// Assistant routes. No .Methods() restriction: the bot gateway calls
	// these with GET or POST depending on how the flow was configured.
	ia := api.PathPrefix("/ia").Subrouter()
	ia.HandleFunc("/consultar", r.assistantHandler.Consultar)
	ia.HandleFunc("/agendar", r.assistantHandler.Agendar)
	ia.HandleFunc("/verificar-disponibilidade", r.assistantHandler.VerificarDisponibilidade)

	// License activation
	api.HandleFunc("/ativar-licenca", r.licenseHandler.Activate).Methods(http.MethodPost)

	// Database webhooks
	api.HandleFunc("/webhooks/confirmar", r.webhookHandler.Confirmar).Methods(http.MethodPost)

	// Backup export
	api.HandleFunc("/backup/gerar", r.backupHandler.Gerar).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) liveness(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("🚀 CronosFlow Backend Online"))
}
