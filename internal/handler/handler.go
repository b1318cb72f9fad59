// Package handler implements the API controllers. Each operation runs
// validate → sanitize → store and shapes failures into the JSON error
// envelope; validation failures never reach the store, and existence
// checks run before body validation on update and delete.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/ewhitmore/quarto/internal/validate"
)

// errorBody is the uniform error envelope: {"error":{"message":"..."}}.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message string `json:"message"`
}

const (
	msgInternal    = "Internal server error"
	msgInvalidBody = "Invalid request body"
	msgInvalidID   = "Invalid id"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Message: message}})
}

func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// decodeBody parses the request body as a JSON object. An empty body
// reads as an empty object, so field-presence validation reports which
// fields are missing instead of rejecting the body outright.
func decodeBody(r *http.Request) (validate.Payload, error) {
	var p validate.Payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return validate.Payload{}, nil
		}
		return nil, err
	}
	return p, nil
}

// requireOneOfMessage builds the 400 message for an update supplying none
// of the updatable fields, e.g. "Request body must contain either 'title',
// 'style' or 'content'".
func requireOneOfMessage(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = "'" + f + "'"
	}
	if len(quoted) == 1 {
		return "Request body must contain " + quoted[0]
	}
	head := strings.Join(quoted[:len(quoted)-1], ", ")
	return "Request body must contain either " + head + " or " + quoted[len(quoted)-1]
}

func missingFieldMessage(field string) string {
	return "Missing '" + field + "' in request body"
}

// textFields pulls the named fields out of a validated payload as strings.
// A present field holding a non-string value fails the shape check.
func textFields(p validate.Payload, names []string) (map[string]string, bool) {
	out := make(map[string]string, len(names))
	for _, name := range names {
		v, present := p[name]
		if !present {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		out[name] = s
	}
	return out, true
}

// folderRef extracts an optional folder_id. JSON numbers decode as
// float64; null and absence both mean no parent.
func folderRef(p validate.Payload) (*int64, bool) {
	v, present := p["folder_id"]
	if !present || v == nil {
		return nil, true
	}
	f, ok := v.(float64)
	if !ok {
		return nil, false
	}
	id := int64(f)
	return &id, true
}
