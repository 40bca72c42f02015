// Package handler provides HTTP handlers for the print-relay API.
package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sevigo/print-relay/internal/config"
	"github.com/sevigo/print-relay/internal/core"
)

const (
	SignatureHeader = "X-Relay-Signature"
	maxPayloadBytes = 1 << 20
	sourceWebhook   = "webhook"
)

// WebhookHandler accepts print notifications over HTTP.
type WebhookHandler struct {
	secret     []byte
	baseURL    string
	dispatcher core.JobDispatcher
	logger     *slog.Logger
}

// NewWebhookHandler creates a new webhook handler with the given configuration and dispatcher.
func NewWebhookHandler(cfg *config.Config, dispatcher core.JobDispatcher, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		secret:     []byte(cfg.Server.WebhookSecret),
		baseURL:    cfg.Fetcher.BaseURL,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

type acceptedResponse struct {
	JobID     string `json:"job_id"`
	SourceURI string `json:"source_uri"`
}

// Handle validates, parses and queues one print notification.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		http.Error(w, "Could not read body", http.StatusBadRequest)
		return
	}

	if len(h.secret) > 0 && !ValidSignature(h.secret, payload, r.Header.Get(SignatureHeader)) {
		h.logger.Warn("invalid webhook payload signature", "remote", r.RemoteAddr)
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	n, err := core.ParseNotification(payload)
	if err != nil {
		h.logger.Debug("could not parse print notification", "error", err)
		http.Error(w, "Could not parse notification", http.StatusBadRequest)
		return
	}

	event, err := core.EventFromNotification(n, h.baseURL, sourceWebhook)
	if err != nil {
		h.logger.Debug("rejecting print notification", "reason", err.Error())
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.dispatcher.Dispatch(r.Context(), event); err != nil {
		if errors.Is(err, core.ErrProcessorStopped) {
			http.Error(w, "Service is shutting down", http.StatusServiceUnavailable)
			return
		}
		h.logger.Error("failed to dispatch print job", "error", err, "uri", event.SourceURI)
		http.Error(w, "Failed to queue print job", http.StatusInternalServerError)
		return
	}

	h.logger.Info("print job accepted", "job_id", event.ID, "uri", event.SourceURI)
	writeJSON(w, http.StatusAccepted, acceptedResponse{JobID: event.ID, SourceURI: event.SourceURI})
}

// Sign returns the signature header value for payload.
func Sign(secret, payload []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

// ValidSignature reports whether header carries the HMAC-SHA256 of payload.
func ValidSignature(secret, payload []byte, header string) bool {
	hexSum, ok := strings.CutPrefix(header, "sha256=")
	if !ok {
		return false
	}
	got, err := hex.DecodeString(hexSum)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return hmac.Equal(got, mac.Sum(nil))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
