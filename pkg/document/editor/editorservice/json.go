package editorservice

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/stateful/webnb/pkg/document"
)

func (h *handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.svc.logger.Error("json encode failed", zap.Error(err))
	}
}

type errResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Line  int    `json:"line,omitempty"`
	ID    string `json:"id,omitempty"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

// writeError maps err to a status code. Parse errors are the client's
// fault and carry their position.
func (h *handler) writeError(w http.ResponseWriter, err error) {
	var perr *document.ParseError
	if errors.As(err, &perr) {
		h.writeJSON(w, http.StatusUnprocessableEntity, errResponse{
			Error: perr.Error(),
			Kind:  document.ErrorKind(perr),
			Line:  perr.Line,
			ID:    perr.ID,
		})
		return
	}

	h.svc.logger.Error("request failed", zap.Error(err))
	h.writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
}

// decodeBody reports whether the request body was decoded. Otherwise
// the response has been written.
func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		h.writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("request body too large"))
		return false
	}

	h.writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON: "+err.Error()))
	return false
}
