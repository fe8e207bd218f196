// Package apierr renders the {code, message} error body spec.md 7 requires,
// in the same spirit as the stake-pf-replay-go api package's error-type
// switch, but reduced to the small fixed set of kinds spec.md 7 names.
package apierr

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Kind is one of the fixed error kinds spec.md 7 lists.
type Kind string

const (
	InvalidArgument Kind = "invalidArgument"
	InvalidMethod   Kind = "invalidMethod"
	MapNotFound     Kind = "mapNotFound"
	InvalidToken    Kind = "invalidToken"
	UnknownToken    Kind = "unknownToken"
	BadRequest      Kind = "badRequest"
	Internal        Kind = "internal"
)

// Error is a JSON-renderable HTTP error.
type Error struct {
	Status  int    `json:"-"`
	Kind    Kind   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// New builds an Error with the given HTTP status, kind, and message.
func New(status int, kind Kind, message string) *Error {
	return &Error{Status: status, Kind: kind, Message: message}
}

// Write sets the response headers spec.md 6 requires for every response and
// renders e's {code, message} body.
func Write(w http.ResponseWriter, r *http.Request, e *Error) {
	WriteJSON(w, r, e.Status, e)
}

// WriteJSON marshals v, sets Content-Type/Cache-Control/Content-Length, and
// writes the body unless r is a HEAD request (spec.md 6: "HEAD returns the
// same headers ... but empty body").
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(status)
	if r != nil && r.Method == http.MethodHead {
		return
	}
	w.Write(data)
}
