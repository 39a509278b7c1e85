package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"log/slog"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shehabweb1/MediCamp-Server/internal/domain"
	"github.com/shehabweb1/MediCamp-Server/internal/service/camp"
	"github.com/shehabweb1/MediCamp-Server/internal/service/feedback"
	"github.com/shehabweb1/MediCamp-Server/internal/service/payment"
	"github.com/shehabweb1/MediCamp-Server/internal/service/registration"
	"github.com/shehabweb1/MediCamp-Server/internal/service/token"
	"github.com/shehabweb1/MediCamp-Server/internal/service/user"
	"github.com/shehabweb1/MediCamp-Server/internal/ws"
)

// Router wires HTTP endpoints to services.
type Router struct {
	mux          *http.ServeMux
	logger       *slog.Logger
	tokens       token.Service
	users        user.Service
	camps        camp.Service
	registration registration.Service
	payments     payment.Service
	feedback     feedback.Service
	hub          *ws.Hub
	upgrader     websocket.Upgrader
	limiter      RateLimiter
	dbHealth     func(context.Context) error

	metricsOnce        sync.Once
	metricsInitialized bool
	requestTotal       *prometheus.CounterVec
	requestLatency     *prometheus.HistogramVec
	rateLimitHits      *prometheus.CounterVec
}

const (
	rateWindowDefault  = time.Minute
	rateWindowRealtime = 30 * time.Second
	rateLimitToken     = 20
	rateLimitPublic    = 120
	rateLimitWrite     = 60
	rateLimitRead      = 120
	rateLimitWebsocket = 30
	healthCheckTimeout = 2 * time.Second
)

// NewRouter assembles routes with dependencies.
func NewRouter(logger *slog.Logger, tokens token.Service, users user.Service, camps camp.Service, regs registration.Service, payments payment.Service, fb feedback.Service, hub *ws.Hub, limiter RateLimiter, dbHealth func(context.Context) error) *Router {
	r := &Router{
		mux:          http.NewServeMux(),
		logger:       logger,
		tokens:       tokens,
		users:        users,
		camps:        camps,
		registration: regs,
		payments:     payments,
		feedback:     fb,
		hub:          hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		limiter:  limiter,
		dbHealth: dbHealth,
	}
	if r.limiter == nil {
		r.limiter = NewMemoryRateLimiter()
	}
	r.initMetrics()
	r.register()
	return r
}

// ServeHTTP delegates to underlying mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Close releases background resources.
func (r *Router) Close() {
	if r.limiter != nil {
		r.limiter.Close()
	}
}

func (r *Router) register() {
	r.mux.HandleFunc("/healthz", r.audit(r.handleHealthz))
	r.mux.Handle("/metrics", promhttp.Handler())
	r.mux.HandleFunc("/jwt", r.audit(r.withRateLimit("jwt", rateLimitToken, rateWindowDefault, rateLimitKeyIP, r.handleIssueToken)))
	r.mux.HandleFunc("/users", r.audit(r.withRateLimit("users", rateLimitPublic, rateWindowDefault, rateLimitKeyIP, r.handleUsers)))
	r.mux.HandleFunc("/users/", r.audit(r.withRateLimit("user", rateLimitPublic, rateWindowDefault, rateLimitKeyIP, r.handleUserSubroutes)))
	r.mux.HandleFunc("/camps", r.audit(r.withRateLimit("camps", rateLimitPublic, rateWindowDefault, rateLimitKeyIP, r.handleCamps)))
	r.mux.HandleFunc("/camps/", r.audit(r.withRateLimit("camp", rateLimitPublic, rateWindowDefault, rateLimitKeyIP, r.handleCampSubroutes)))
	r.mux.HandleFunc("/participant", r.audit(r.handlerAuthRate("participant", rateLimitWrite, rateWindowDefault, r.handleRegister)))
	r.mux.HandleFunc("/participant/", r.audit(r.requireAuth(r.handleParticipantSubroutes)))
	r.mux.HandleFunc("/create-payment-intent", r.audit(r.withRateLimit("create-payment-intent", rateLimitWrite, rateWindowDefault, rateLimitKeyIP, r.handleCreateIntent)))
	r.mux.HandleFunc("/payments", r.audit(r.handlerAuthRate("payments", rateLimitWrite, rateWindowDefault, r.handleConfirmPayment)))
	r.mux.HandleFunc("/payments/", r.audit(r.handlerAuthRate("payment-history", rateLimitRead, rateWindowDefault, r.handlePaymentHistory)))
	r.mux.HandleFunc("/feedback", r.audit(r.withRateLimit("feedback", rateLimitPublic, rateWindowDefault, rateLimitKeyIP, r.handleFeedback)))
	r.mux.HandleFunc("/ws/registrations", r.audit(r.handlerAuthRate("roster-ws", rateLimitWebsocket, rateWindowRealtime, r.handleRosterWS)))
	r.mux.HandleFunc("/", r.audit(r.handleRoot))
}

func (r *Router) handleRoot(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != "/" {
		r.notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to MediCamp Server"})
}

func (r *Router) handleIssueToken(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	var claims map[string]any
	if err := json.NewDecoder(req.Body).Decode(&claims); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	signed, err := r.tokens.Issue(claims)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": signed})
}

func (r *Router) handleUsers(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodPost:
		var payload domain.User
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		result, err := r.users.Create(req.Context(), payload)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, result)
	case http.MethodGet:
		users, err := r.users.List(req.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, users)
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleUserSubroutes(w http.ResponseWriter, req *http.Request) {
	email := strings.TrimPrefix(req.URL.Path, "/users/")
	if email == "" || strings.Contains(email, "/") {
		r.notFound(w)
		return
	}
	switch req.Method {
	case http.MethodGet:
		found, err := r.users.Get(req.Context(), email)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, found)
	case http.MethodPatch:
		ctx, _, ok := r.ensureAuth(w, req)
		if !ok {
			return
		}
		req = req.WithContext(ctx)
		var payload domain.ProfileUpdate
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		result, err := r.users.UpdateProfile(req.Context(), email, payload)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleCamps(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		camps, err := r.camps.List(req.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, camps)
	case http.MethodPost:
		ctx, _, ok := r.ensureAuth(w, req)
		if !ok {
			return
		}
		req = req.WithContext(ctx)
		var payload domain.Camp
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		created, result, err := r.camps.Create(req.Context(), payload)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"camp": created, "insertResult": result})
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleCampSubroutes(w http.ResponseWriter, req *http.Request) {
	trimmed := strings.TrimPrefix(req.URL.Path, "/camps/")
	parts := strings.Split(trimmed, "/")
	if len(parts) < 1 || parts[0] == "" {
		r.notFound(w)
		return
	}
	campID := parts[0]
	if len(parts) == 2 && parts[1] == "reconcile" {
		r.handleCampReconcile(w, req, campID)
		return
	}
	if len(parts) > 1 {
		r.notFound(w)
		return
	}
	switch req.Method {
	case http.MethodGet:
		found, err := r.camps.Get(req.Context(), campID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, found)
	case http.MethodPatch:
		ctx, _, ok := r.ensureAuth(w, req)
		if !ok {
			return
		}
		req = req.WithContext(ctx)
		var payload domain.CampUpdate
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		result, err := r.camps.Update(req.Context(), campID, payload)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	case http.MethodDelete:
		ctx, _, ok := r.ensureAuth(w, req)
		if !ok {
			return
		}
		req = req.WithContext(ctx)
		result, err := r.camps.Delete(req.Context(), campID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleCampReconcile(w http.ResponseWriter, req *http.Request, campID string) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	ctx, _, ok := r.ensureAuth(w, req)
	if !ok {
		return
	}
	req = req.WithContext(ctx)
	result, err := r.camps.Reconcile(req.Context(), campID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (r *Router) handleRegister(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	if _, ok := identityFromContext(req.Context()); !ok {
		r.logger.Error("auth context missing for registration", "path", req.URL.Path)
		writeError(w, http.StatusInternalServerError, "authorization context missing")
		return
	}
	var payload registration.JoinInput
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	result, err := r.registration.Register(req.Context(), payload)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (r *Router) handleParticipantSubroutes(w http.ResponseWriter, req *http.Request) {
	key := strings.TrimPrefix(req.URL.Path, "/participant/")
	if key == "" || strings.Contains(key, "/") {
		r.notFound(w)
		return
	}
	switch req.Method {
	case http.MethodGet:
		// key is the participant email here; callers read only their own roster.
		if !r.requireOwner(w, req, key) {
			return
		}
		participants, err := r.registration.ListByEmail(req.Context(), key)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, participants)
	case http.MethodDelete:
		// key is the participant document id here.
		result, err := r.registration.Withdraw(req.Context(), key)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleCreateIntent(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	var payload struct {
		Fees float64 `json:"fees"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	secret, err := r.payments.CreateIntent(req.Context(), payload.Fees)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"clientSecret": secret})
}

func (r *Router) handleConfirmPayment(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	if _, ok := identityFromContext(req.Context()); !ok {
		r.logger.Error("auth context missing for payment confirmation", "path", req.URL.Path)
		writeError(w, http.StatusInternalServerError, "authorization context missing")
		return
	}
	var payload payment.ConfirmInput
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	result, err := r.payments.Confirm(req.Context(), payload)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (r *Router) handlePaymentHistory(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w)
		return
	}
	email := strings.TrimPrefix(req.URL.Path, "/payments/")
	if email == "" || strings.Contains(email, "/") {
		r.notFound(w)
		return
	}
	if !r.requireOwner(w, req, email) {
		return
	}
	payments, err := r.payments.ListForIdentity(req.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (r *Router) handleFeedback(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodPost:
		var payload domain.Feedback
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		result, err := r.feedback.Submit(req.Context(), payload)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, result)
	case http.MethodGet:
		entries, err := r.feedback.List(req.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleRosterWS(w http.ResponseWriter, req *http.Request) {
	if _, ok := identityFromContext(req.Context()); !ok {
		r.logger.Error("auth context missing for roster websocket", "path", req.URL.Path)
		writeError(w, http.StatusInternalServerError, "authorization context missing")
		return
	}
	campID := req.URL.Query().Get("camp_id")
	if campID == "" {
		writeError(w, http.StatusBadRequest, "camp_id query parameter required")
		return
	}
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	client := ws.NewClient(conn, r.logger)
	r.hub.Register(campID, client)
	go func() {
		defer func() {
			r.hub.Unregister(campID, client)
			client.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

func (r *Router) handleHealthz(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w)
		return
	}
	components := make(map[string]any)
	status := "ok"
	if r.dbHealth != nil {
		ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
		defer cancel()
		if err := r.dbHealth(ctx); err != nil {
			status = "degraded"
			components["database"] = map[string]any{
				"status": "down",
				"error":  err.Error(),
			}
		} else {
			components["database"] = map[string]any{"status": "up"}
		}
	}
	payload := map[string]any{
		"status":     status,
		"components": components,
		"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
	}
	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, payload)
}

func (r *Router) methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func (r *Router) notFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, "not found")
}
