package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"TickerWatch/internal/logger"
	"TickerWatch/internal/model"
	"TickerWatch/internal/notifier"
	"TickerWatch/internal/router"
)

const maxBodySize = 1 << 20

// ChatRouter is the part of the router the HTTP layer drives.
type ChatRouter interface {
	Handle(ctx context.Context, chatID, text string)
	Authorized(token string) bool
	RelaySignal(ctx context.Context, token string, alert *model.SignalAlert) error
}

// WebhookServer receives Telegram updates and external trading signals.
type WebhookServer struct {
	addr   string
	router ChatRouter
	server *http.Server
}

// NewWebhookServer creates a server listening on addr.
func NewWebhookServer(addr string, r ChatRouter) *WebhookServer {
	ws := &WebhookServer{addr: addr, router: r}
	ws.server = &http.Server{
		Addr:              addr,
		Handler:           ws.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return ws
}

// Handler returns the HTTP routes.
func (ws *WebhookServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /webhook", ws.traced("webhook.chat", ws.handleWebhook))
	mux.HandleFunc("POST /signal", ws.traced("webhook.signal", ws.handleSignal))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	return mux
}

// ListenAndServe blocks until the server stops. http.ErrServerClosed is not an error.
func (ws *WebhookServer) ListenAndServe() error {
	logger.Info(context.Background(), "webhook server listening", "addr", ws.addr)
	if err := ws.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (ws *WebhookServer) Shutdown(ctx context.Context) error {
	return ws.server.Shutdown(ctx)
}

func (ws *WebhookServer) traced(name string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.WithRequestID(r.Context())
		op := logger.StartOperation(ctx, name, "remote", r.RemoteAddr)
		next(w, r.WithContext(op.Context()))
		op.End()
	}
}

// handleWebhook always answers {ok:true}; problems surface as chat replies.
func (ws *WebhookServer) handleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var update notifier.Update
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&update); err != nil {
		logger.Warn(ctx, "undecodable chat update", "error", err)
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}
	if chatID, text := update.ChatID(), update.Text(); chatID != "" && text != "" {
		ws.router.Handle(ctx, chatID, text)
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) < len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

func (ws *WebhookServer) handleSignal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// The body is not read before the token is checked.
	token := bearerToken(r)
	if !ws.router.Authorized(token) {
		logger.Warn(ctx, "signal rejected", "has_token", token != "")
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var alert model.SignalAlert
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.UseNumber()
	if err := dec.Decode(&alert); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if alert.Ticker == "" || alert.Signal == "" || alert.Price == nil {
		writeError(w, http.StatusBadRequest, "ticker, signal and price are required")
		return
	}

	if err := ws.router.RelaySignal(ctx, token, &alert); err != nil {
		if errors.Is(err, router.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		logger.ErrorWithErr(ctx, "relay signal", err)
		writeError(w, http.StatusBadGateway, "relay failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"ok": false, "error": msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
