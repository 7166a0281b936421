// Package httpserver is the HTTP/JSON transport of the auth service.
package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/and161185/zk-journal/internal/api/httpapi"
	"github.com/and161185/zk-journal/internal/authctx"
	"github.com/and161185/zk-journal/internal/convert"
	"github.com/and161185/zk-journal/internal/errs"
	"github.com/and161185/zk-journal/internal/service"
)

// maxBody bounds request bodies; protocol messages are a few hundred bytes.
const maxBody = 64 << 10

type handler struct {
	auth service.AuthService
}

func errorBody(msg string) httpapi.ErrorResponse {
	return httpapi.ErrorResponse{Error: msg}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps a boundary error to an HTTP status and a public message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrMalformedRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, errs.ErrSessionInvalid):
		return http.StatusGone, errs.ErrSessionInvalid.Error()
	case errors.Is(err, errs.ErrAuthenticationFailed):
		return http.StatusUnauthorized, errs.ErrAuthenticationFailed.Error()
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized, errs.ErrUnauthorized.Error()
	case errors.Is(err, errs.ErrIdentityAlreadyRegistered):
		return http.StatusConflict, errs.ErrIdentityAlreadyRegistered.Error()
	case errors.Is(err, errs.ErrRateLimited):
		return http.StatusTooManyRequests, errs.ErrRateLimited.Error()
	case errors.Is(err, errs.ErrUnavailable):
		return http.StatusServiceUnavailable, errs.ErrUnavailable.Error()
	default:
		return http.StatusInternalServerError, errs.ErrInternal.Error()
	}
}

func writeError(w http.ResponseWriter, err error) {
	code, msg := statusFor(err)
	writeJSON(w, code, errorBody(msg))
}

// decode reads one JSON object, rejecting unknown fields and trailing data.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid json body", errs.ErrMalformedRequest)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data", errs.ErrMalformedRequest)
	}
	return nil
}

func (h *handler) registerStart(w http.ResponseWriter, r *http.Request) {
	var req httpapi.RegisterStartRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	identifier, blob, err := convert.FromJSONRegisterStart(&req)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := h.auth.RegisterStart(r.Context(), identifier, blob)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToJSONRegisterStart(res))
}

func (h *handler) registerFinish(w http.ResponseWriter, r *http.Request) {
	var req httpapi.RegisterFinishRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	sid, record, err := convert.FromJSONRegisterFinish(req.SessionID, req.RegistrationRecord)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.auth.RegisterFinish(r.Context(), sid, record); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, httpapi.SuccessResponse{Success: true})
}

func (h *handler) loginStart(w http.ResponseWriter, r *http.Request) {
	var req httpapi.LoginStartRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	identifier, ke1, err := convert.FromJSONLoginStart(&req)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := h.auth.LoginStart(r.Context(), identifier, ke1, clientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToJSONLoginStart(res))
}

func (h *handler) loginFinish(w http.ResponseWriter, r *http.Request) {
	var req httpapi.LoginFinishRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	sid, ke3, err := convert.FromJSONLoginFinish(&req)
	if err != nil {
		writeError(w, err)
		return
	}
	tok, err := h.auth.LoginFinish(r.Context(), sid, ke3, clientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToJSONTokens(tok))
}

func (h *handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req httpapi.RefreshRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	tok, err := h.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToJSONRefresh(tok))
}

func (h *handler) reRegisterStart(w http.ResponseWriter, r *http.Request) {
	userID, ok := authctx.User(r.Context())
	if !ok {
		writeError(w, errs.ErrUnauthorized)
		return
	}
	var req httpapi.ReRegisterStartRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	blob, err := convert.Blob("registration_request", req.RegistrationRequest)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := h.auth.ReRegisterStart(r.Context(), userID, blob)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToJSONRegisterStart(res))
}

func (h *handler) reRegisterFinish(w http.ResponseWriter, r *http.Request) {
	userID, ok := authctx.User(r.Context())
	if !ok {
		writeError(w, errs.ErrUnauthorized)
		return
	}
	var req httpapi.ReRegisterFinishRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	sid, record, err := convert.FromJSONRegisterFinish(req.SessionID, req.RegistrationRecord)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.auth.ReRegisterFinish(r.Context(), userID, sid, record); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, httpapi.SuccessResponse{Success: true})
}

func (h *handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := authctx.User(r.Context())
	if !ok {
		writeError(w, errs.ErrUnauthorized)
		return
	}
	if err := h.auth.DeleteAccount(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, httpapi.SuccessResponse{Success: true})
}
