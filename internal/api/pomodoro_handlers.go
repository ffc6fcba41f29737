package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/safi/checktick/internal/error_values"
	"github.com/safi/checktick/pkg/httputil"
)

type StartPomodoroRequest struct {
	TaskID   *uuid.UUID `json:"task_id"`
	Duration int        `json:"duration"`
}

func (s *Server) StartPomodoro(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	user, err := GetUserFromContext(r)
	if err != nil {
		logger.Error("start pomodoro error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}
	var req StartPomodoroRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("start pomodoro error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	session, err := s.pomodoroService.Start(r.Context(), user.ID, req.TaskID, req.Duration)
	if err != nil {
		logger.Error("start pomodoro error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while starting pomodoro", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, session)
	logger.Info("pomodoro started", slog.String("session_id", session.ID.String()))
}

func (s *Server) CompletePomodoro(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	user, err := GetUserFromContext(r)
	if err != nil {
		logger.Error("complete pomodoro error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("complete pomodoro error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid session id in path value", nil)
		return
	}
	err = s.pomodoroService.Complete(r.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrPomodoroNotFound) {
			logger.Error("complete pomodoro error: session doesn't exist")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "Pomodoro session not found", nil)
			return
		}
		logger.Error("complete pomodoro error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while completing pomodoro", nil)
		return
	}
	httputil.WriteMessageResponse(w, http.StatusOK, "Completed")
	logger.Info("pomodoro completed", slog.String("session_id", id.String()))
}
