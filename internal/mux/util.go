package mux

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"holdem-server/pkg/room"
	"holdem-server/pkg/texasholdem"
)

func decodeRequest(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if ct := r.Header.Get("Content-Type"); ct != "application/json" && ct != "text/json" {
		writeJSONError(w, http.StatusUnsupportedMediaType, nil)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return false
	}

	return true
}

// parsePlayerID reads the optional playerId query parameter, 0 means a spectator
func parsePlayerID(r *http.Request) (int64, error) {
	str := r.FormValue("playerId")
	if str == "" {
		return 0, nil
	}

	id, err := strconv.ParseInt(str, 10, 64)
	if err != nil || id < 0 {
		return 0, errors.New("playerId must be a positive integer")
	}

	return id, nil
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not write JSON response")
	}
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// writeGameError treats mistakes by the player as a 400, a missing table as a 404 and everything else as a 500
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case texasholdem.IsUserError(err):
		writeJSONError(w, http.StatusBadRequest, err)
	case errors.Is(err, room.ErrTableNotFound), errors.Is(err, room.ErrTableClosed):
		writeJSONError(w, http.StatusNotFound, nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeJSONError(w, http.StatusServiceUnavailable, err)
	default:
		writeJSONError(w, http.StatusInternalServerError, err)
	}
}

func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	var msg string

	if statusCode < 500 && err != nil {
		msg = err.Error()
	} else {
		msg = http.StatusText(statusCode)
	}

	if statusCode >= 500 {
		logrus.WithField("statusCode", statusCode).Error(err)
	}

	writeJSON(w, statusCode, errorResponse{
		Message:    msg,
		StatusCode: statusCode,
	})
}
