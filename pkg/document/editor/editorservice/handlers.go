package editorservice

import (
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/stateful/webnb/pkg/document/editor"
)

type handler struct {
	svc *Service
}

type DeserializeRequest struct {
	Source string `json:"source"`
}

type DeserializeResponse struct {
	Notebook *editor.Notebook `json:"notebook"`
}

type SerializeRequest struct {
	Notebook  *editor.Notebook `json:"notebook"`
	AssignIDs bool             `json:"assignIds,omitempty"`
}

type SerializeResponse struct {
	Source string `json:"source"`
}

// Health handles GET /healthz.
func (h *handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"cached": h.svc.CachedItems(),
	})
}

// Deserialize handles POST /v1/deserialize.
func (h *handler) Deserialize(w http.ResponseWriter, r *http.Request) {
	var req DeserializeRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	h.svc.logger.Info("Deserialize", zap.String("source", logPrefix(req.Source, 64)))

	notebook, err := h.svc.Deserialize(r.Context(), []byte(req.Source))
	if err != nil {
		h.svc.logger.Info("failed to call Deserialize", zap.Error(err))
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, DeserializeResponse{Notebook: notebook})
}

// Serialize handles POST /v1/serialize.
func (h *handler) Serialize(w http.ResponseWriter, r *http.Request) {
	var req SerializeRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if req.Notebook == nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody("notebook is required"))
		return
	}
	for idx, cell := range req.Notebook.Cells {
		if cell == nil {
			h.writeJSON(w, http.StatusBadRequest, errorBody("cell "+strconv.Itoa(idx)+" is null"))
			return
		}
	}

	h.svc.logger.Info("Serialize", zap.Int("cells", len(req.Notebook.Cells)))

	source := h.svc.Serialize(r.Context(), req.Notebook, req.AssignIDs)
	h.writeJSON(w, http.StatusOK, SerializeResponse{Source: string(source)})
}

// ListNotebooks handles GET /v1/notebooks.
func (h *handler) ListNotebooks(w http.ResponseWriter, _ *http.Request) {
	items, err := h.svc.store.List("", h.svc.matcher)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"notebooks": items,
		"total":     len(items),
	})
}

// GetNotebook handles GET /v1/notebooks/*. The path may contain
// encoded slashes.
func (h *handler) GetNotebook(w http.ResponseWriter, r *http.Request) {
	path := notebookPath(r)
	if path == "" {
		h.writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	if !h.svc.matcher.Match(path) {
		h.writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}

	data, err := h.svc.store.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			h.writeJSON(w, http.StatusNotFound, errorBody("not found"))
			return
		}
		h.svc.logger.Info("failed to read notebook", zap.String("path", path), zap.Error(err))
		h.writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	notebook, err := h.svc.Deserialize(r.Context(), data)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, DeserializeResponse{Notebook: notebook})
}

func notebookPath(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// logPrefix returns at most n bytes of s without splitting a rune.
func logPrefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
