package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"

	"github.com/losingsanity/anyvod/internal/apperrors"
	"github.com/losingsanity/anyvod/internal/config"
)

// Browser cache lifetimes for passthrough responses, in seconds.
const (
	cacheLists         = 300
	cacheDetails       = 3600
	cacheConfiguration = 86400
	cacheLatest        = 600
)

// statusClientClosedRequest is logged when the caller went away mid-request.
const statusClientClosedRequest = 499

type detailResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger := config.GetLogger()
		logger.Debug().Err(err).Msg("Failed to write response")
	}
}

// writeRaw relays an upstream JSON body unchanged and lets the browser keep
// it for maxAge seconds.
func writeRaw(w http.ResponseWriter, body []byte, maxAge int) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAge))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, detailResponse{Detail: detail})
}

// statusFor maps a service error onto the HTTP status and detail text the
// API answers with.
func statusFor(err error) (int, string) {
	var upstreamErr *apperrors.ErrUpstreamStatus
	switch {
	case errors.As(err, &upstreamErr):
		return upstreamErr.StatusCode, upstreamErr.Body
	case errors.Is(err, &apperrors.ErrInvalidParameter{}):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, &apperrors.ErrNotFound{}):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, &apperrors.ErrMissingAPIKey{}):
		var keyErr *apperrors.ErrMissingAPIKey
		errors.As(err, &keyErr)
		return http.StatusInternalServerError, keyErr.Error()
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest, "request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, err.Error()
	default:
		return http.StatusBadGateway, err.Error()
	}
}

// writeError logs err against the request and answers with {"detail": ...}.
// Server side failures are also reported to Sentry when it is configured.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := statusFor(err)
	logger := zerolog.Ctx(r.Context())

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Int("status", status).Msg("Request failed")
		if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
			hub.CaptureException(err)
		} else {
			sentry.CaptureException(err)
		}
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("Request rejected")
	}

	if status == statusClientClosedRequest {
		w.WriteHeader(status)
		return
	}
	writeDetail(w, status, detail)
}
