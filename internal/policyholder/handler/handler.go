// Package handler is the thin HTTP layer over the named-operation
// contract. It splits the surface the way ledger gateways do: /invoke
// submits operations that may write and sits behind the admin token,
// /query evaluates read-only operations.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cyberins/internal/policyholder/contract"
	dErrors "cyberins/pkg/domain-errors"
	adminmw "cyberins/pkg/platform/middleware/admin"
)

// Handler wires HTTP endpoints to the operation dispatcher.
type Handler struct {
	contract   *contract.Contract
	logger     *slog.Logger
	adminToken string
}

// New constructs the HTTP handler.
func New(c *contract.Contract, logger *slog.Logger, adminToken string) *Handler {
	return &Handler{contract: c, logger: logger, adminToken: adminToken}
}

// Register mounts the ledger routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(adminmw.RequireAdminToken(h.adminToken, h.logger))
		r.Post("/invoke", h.handleInvoke)
	})
	r.Post("/query", h.handleQuery)
}

type invokeRequest struct {
	Operation string   `json:"operation"`
	Args      []string `json:"args"`
}

type invokeResponse struct {
	Result any `json:"result"`
}

func (h *Handler) handleInvoke(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, false)
}

// handleQuery evaluates read-only operations without the admin token.
// Write operations submitted here are rejected before any dispatch.
func (h *Handler) handleQuery(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, true)
}

func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, readOnly bool) {
	var req invokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Operation == "" {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "operation is required"))
		return
	}
	if readOnly && contract.IsWrite(req.Operation) {
		writeError(w, dErrors.Newf(dErrors.CodeBadRequest, "%s must be submitted via /invoke", req.Operation))
		return
	}

	result, err := h.contract.Invoke(r.Context(), req.Operation, req.Args)
	if err != nil {
		h.logOperationError(r, req.Operation, err)
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(invokeResponse{Result: result})
}

func (h *Handler) logOperationError(r *http.Request, operation string, err error) {
	var de *dErrors.Error
	if errors.As(err, &de) && de.Code != dErrors.CodeInternal {
		return // expected business outcomes are not log noise
	}
	h.logger.ErrorContext(r.Context(), "operation failed", "operation", operation, "error", err)
}

// writeError centralizes domain error translation to HTTP responses so
// every route returns the same JSON error envelope.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := dErrors.CodeInternal
	message := "internal error"

	var de *dErrors.Error
	if errors.As(err, &de) {
		status = dErrors.ToHTTPStatus(de.Code)
		code = de.Code
		message = de.Message
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   string(code),
		"message": message,
	})
}
