package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"recipebox/apperr"
)

// Envelope wraps every API response.
type Envelope struct {
	Success    bool `json:"success"`
	StatusCode int  `json:"status_code"`
	Response   any  `json:"response"`
}

// Message is the response payload for confirmations and failures.
type Message struct {
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

func RespondWithJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}

// Respond writes a successful envelope around payload.
func Respond(w http.ResponseWriter, statusCode int, payload any) {
	RespondWithJSON(w, statusCode, Envelope{Success: true, StatusCode: statusCode, Response: payload})
}

// RespondMessage writes a successful envelope carrying only a message.
func RespondMessage(w http.ResponseWriter, statusCode int, msg string) {
	Respond(w, statusCode, Message{Message: msg})
}

// RespondWithError renders err as a failed envelope. Errors that are not
// *apperr.Error are reported as store failures with fallback as message.
func RespondWithError(w http.ResponseWriter, err error, fallback string) {
	appErr := apperr.From(err, fallback)
	status := appErr.Kind.Status()

	entry := logrus.WithField("status", status)
	if appErr.Err != nil {
		entry = entry.WithError(appErr.Err)
	}
	switch {
	case appErr.Kind == apperr.KindStoreUnavailable:
		// Outages are logged once by the connection monitor.
		entry.Debug(appErr.Message)
	case status >= http.StatusInternalServerError, appErr.Kind == apperr.KindStoreFailure:
		entry.Error(appErr.Message)
	default:
		entry.Debug(appErr.Message)
	}

	RespondWithJSON(w, status, Envelope{
		Success:    false,
		StatusCode: status,
		Response:   Message{Message: appErr.Message, Errors: appErr.Details},
	})
}

// IsAppKind reports whether err is an *apperr.Error of kind k.
func IsAppKind(err error, k apperr.Kind) bool {
	var appErr *apperr.Error
	return errors.As(err, &appErr) && appErr.Kind == k
}
