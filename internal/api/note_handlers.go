package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/safi/checktick/internal/error_values"
	"github.com/safi/checktick/internal/service"
	"github.com/safi/checktick/pkg/httputil"
)

type CreateNoteRequest struct {
	Content  string `json:"content"`
	Color    string `json:"color"`
	X        int    `json:"x_position"`
	Y        int    `json:"y_position"`
	ZIndex   int    `json:"z_index"`
	Expanded bool   `json:"is_expanded"`
}

type UpdateNoteRequest struct {
	Content  *string `json:"content"`
	Color    *string `json:"color"`
	X        *int    `json:"x_position"`
	Y        *int    `json:"y_position"`
	ZIndex   *int    `json:"z_index"`
	Expanded *bool   `json:"is_expanded"`
}

type CreateNoteEdgeRequest struct {
	SourceID uuid.UUID `json:"source_id"`
	TargetID uuid.UUID `json:"target_id"`
}

func (s *Server) GetNotes(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	user, err := GetUserFromContext(r)
	if err != nil {
		logger.Error("get notes error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}
	notes, err := s.notesService.List(r.Context(), user.ID)
	if err != nil {
		logger.Error("getting notes list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting notes list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, notes)
}

func (s *Server) CreateNote(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	user, err := GetUserFromContext(r)
	if err != nil {
		logger.Error("create note error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}
	var req CreateNoteRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create note error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	note, err := s.notesService.Create(r.Context(), user.ID, &service.CreateNoteRequest{
		Content:  req.Content,
		Color:    req.Color,
		X:        req.X,
		Y:        req.Y,
		ZIndex:   req.ZIndex,
		Expanded: req.Expanded,
	})
	if err != nil {
		logger.Error("create note error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "couldn't create note", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, note)
	logger.Info("note created", slog.String("note_id", note.ID.String()))
}

func (s *Server) UpdateNote(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	user, err := GetUserFromContext(r)
	if err != nil {
		logger.Error("update note error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("update note error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid note id in path value", nil)
		return
	}
	var req UpdateNoteRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update note error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	note, err := s.notesService.Update(r.Context(), id, user.ID, &service.UpdateNoteRequest{
		Content:  req.Content,
		Color:    req.Color,
		X:        req.X,
		Y:        req.Y,
		ZIndex:   req.ZIndex,
		Expanded: req.Expanded,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrNoteNotFound) {
			logger.Error("update note error: note doesn't exist")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "Note not found", nil)
			return
		}
		logger.Error("update note error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "couldn't update note", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, note)
	logger.Info("note updated", slog.String("note_id", note.ID.String()))
}

func (s *Server) DeleteNote(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	user, err := GetUserFromContext(r)
	if err != nil {
		logger.Error("delete note error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("delete note error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid note id in path value", nil)
		return
	}
	err = s.notesService.Delete(r.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNoteNotFound) {
			logger.Error("delete note error: note doesn't exist")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "Note not found", nil)
			return
		}
		logger.Error("delete note error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting note", nil)
		return
	}
	httputil.WriteMessageResponse(w, http.StatusOK, "Note deleted")
	logger.Info("note deleted", slog.String("note_id", id.String()))
}

func (s *Server) GetNoteEdges(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	user, err := GetUserFromContext(r)
	if err != nil {
		logger.Error("get note edges error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}
	edges, err := s.notesService.ListEdges(r.Context(), user.ID)
	if err != nil {
		logger.Error("getting note edges error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting note edges", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, edges)
}

func (s *Server) CreateNoteEdge(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	user, err := GetUserFromContext(r)
	if err != nil {
		logger.Error("create note edge error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}
	var req CreateNoteEdgeRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create note edge error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	edge, err := s.notesService.Link(r.Context(), user.ID, req.SourceID, req.TargetID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNoteNotFound) {
			logger.Error("create note edge error: note doesn't exist")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "Note not found", nil)
			return
		}
		logger.Error("create note edge error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while linking notes", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, edge)
	logger.Info("note edge created", slog.String("edge_id", edge.ID.String()))
}

func (s *Server) DeleteNoteEdge(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	user, err := GetUserFromContext(r)
	if err != nil {
		logger.Error("delete note edge error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("delete note edge error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid edge id in path value", nil)
		return
	}
	err = s.notesService.Unlink(r.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNoteNotFound) {
			logger.Error("delete note edge error: edge doesn't exist")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "Note edge not found", nil)
			return
		}
		logger.Error("delete note edge error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while unlinking notes", nil)
		return
	}
	httputil.WriteMessageResponse(w, http.StatusOK, "Note edge deleted")
	logger.Info("note edge deleted", slog.String("edge_id", id.String()))
}
