package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/bnema/dockyard/internal/application/usecase"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/logging"
)

type layoutInfo struct {
	Session   string    `json:"session"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}

type saveResponse struct {
	Session   string    `json:"session"`
	UpdatedAt time.Time `json:"updated_at"`
	Report    report    `json:"report"`
}

type report struct {
	Clean        bool     `json:"clean"`
	Unknown      []string `json:"unknown,omitempty"`
	Dropped      []string `json:"dropped,omitempty"`
	Placeholders []string `json:"placeholders,omitempty"`
	Coerced      []string `json:"coerced,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toReport(r *entity.LoadReport) report {
	out := report{Clean: r.Clean()}
	if r == nil {
		return out
	}
	for _, err := range r.Unknown {
		out.Unknown = append(out.Unknown, err.Error())
	}
	for _, id := range r.Dropped {
		out.Dropped = append(out.Dropped, string(id))
	}
	for _, id := range r.Placeholders {
		out.Placeholders = append(out.Placeholders, string(id))
	}
	out.Coerced = r.Coerced
	return out
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, errors.New("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	infos, err := s.cfg.ListLayouts.Execute(r.Context(), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]layoutInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, layoutInfo{Session: string(info.SessionID), Size: info.Size, UpdatedAt: info.UpdatedAt})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	out, err := s.cfg.LoadLayout.Execute(r.Context(), entity.SessionID(r.PathValue("session")))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Last-Modified", out.Record.UpdatedAt.UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out.Record.Document)
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxDocumentBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	out, err := s.cfg.SaveLayout.Execute(r.Context(), usecase.SaveLayoutInput{
		SessionID: entity.SessionID(r.PathValue("session")),
		Document:  body,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saveResponse{
		Session:   string(out.Record.SessionID),
		UpdatedAt: out.Record.UpdatedAt,
		Report:    toReport(out.Report),
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.cfg.DeleteLayout.Execute(r.Context(), entity.SessionID(r.PathValue("session"))); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	data, err := s.cfg.Codec.Schema()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	_, _ = w.Write(data)
}

// fail maps domain errors to status codes. Anything unrecognized is a 500
// and is logged; its message is not sent to the client.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrLayoutNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, entity.ErrInvalidSession),
		errors.Is(err, entity.ErrMalformedDocument),
		errors.Is(err, entity.ErrUnknownContentType):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, entity.ErrInvalidOperation):
		writeError(w, http.StatusUnprocessableEntity, err)
	default:
		logging.FromContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
