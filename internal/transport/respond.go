package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/safar/localkirana/internal/service"
	"github.com/sirupsen/logrus"
)

type payload map[string]interface{}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		logrus.WithError(err).Error("encode JSON response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, payload{"success": false, "message": message})
}

func respondSuccess(w http.ResponseWriter, fields payload) {
	body := payload{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	respondJSON(w, http.StatusOK, body)
}

// respondServiceError writes err with the status its kind maps to.
// Conflicts and failed logins are reported with 200 and success false.
func respondServiceError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		log.WithError(err).Error("unclassified service error")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	status := http.StatusInternalServerError
	switch svcErr.Kind {
	case service.KindValidation:
		status = http.StatusBadRequest
	case service.KindConflict, service.KindAuth:
		status = http.StatusOK
	case service.KindNotFound:
		status = http.StatusNotFound
	}
	respondError(w, status, svcErr.Message)
}

// decode reads the JSON request body into v. An empty or malformed body, or
// one with anything after the first value, is answered with 400 and false is
// returned.
func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil || dec.Decode(&struct{}{}) != io.EOF {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return false
	}
	return true
}
