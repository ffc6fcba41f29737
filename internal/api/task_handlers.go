package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/safi/checktick/internal/error_values"
	"github.com/safi/checktick/internal/service"
	"github.com/safi/checktick/pkg/entity"
	"github.com/safi/checktick/pkg/httputil"
)

type CreateTaskRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Priority    string           `json:"priority"`
	Category    string           `json:"category"`
	DueDate     string           `json:"due_date"`
	Recurring   string           `json:"recurring"`
	Subtasks    []entity.Subtask `json:"subtasks"`
}

// UpdateTaskRequest mirrors the service patch struct; absent JSON fields stay
// nil and unknown fields are rejected at decode time.
type UpdateTaskRequest struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Priority    *string           `json:"priority"`
	Category    *string           `json:"category"`
	DueDate     *string           `json:"due_date"`
	Completed   *bool             `json:"completed"`
	Order       *int              `json:"order"`
	Recurring   *string           `json:"recurring"`
	Subtasks    *[]entity.Subtask `json:"subtasks"`
}

type ReorderItem struct {
	TaskID uuid.UUID `json:"task_id"`
	Order  int       `json:"order"`
}

func (s *Server) GetTasks(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	user, err := GetUserFromContext(r)
	if err != nil {
		logger.Error("get tasks error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}
	tasks, err := s.tasksService.List(r.Context(), user.ID)
	if err != nil {
		logger.Error("getting tasks list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting tasks list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, tasks)
}

func (s *Server) CreateTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	user, err := GetUserFromContext(r)
	if err != nil {
		logger.Error("create task error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}
	var req CreateTaskRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create task error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	task, err := s.tasksService.Create(r.Context(), user.ID, &service.CreateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
		DueDate:     req.DueDate,
		Recurring:   req.Recurring,
		Subtasks:    req.Subtasks,
	})
	if err != nil {
		logger.Error("create task error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "couldn't create task", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, task)
	logger.Info("task created", slog.String("task_id", task.ID.String()))
}

func (s *Server) UpdateTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	user, err := GetUserFromContext(r)
	if err != nil {
		logger.Error("update task error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("update task error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid task id in path value", nil)
		return
	}
	var req UpdateTaskRequest
	defer r.Body.Close()
	dec := sonic.ConfigDefault.NewDecoder(r.Body)
	// Unknown fields are rejected rather than silently accepted
	dec.DisallowUnknownFields()
	err = dec.Decode(&req)
	if err != nil {
		logger.Error("update task error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	task, err := s.tasksService.Update(r.Context(), id, user.ID, &service.UpdateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
		DueDate:     req.DueDate,
		Completed:   req.Completed,
		Order:       req.Order,
		Recurring:   req.Recurring,
		Subtasks:    req.Subtasks,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrTaskNotFound) {
			logger.Error("update task error: task doesn't exist")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "Task not found", nil)
			return
		}
		logger.Error("update task error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "couldn't update task", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, task)
	logger.Info("task updated", slog.String("task_id", task.ID.String()))
}

func (s *Server) DeleteTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	user, err := GetUserFromContext(r)
	if err != nil {
		logger.Error("delete task error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("delete task error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid task id in path value", nil)
		return
	}
	err = s.tasksService.Delete(r.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrTaskNotFound) {
			logger.Error("delete task error: task doesn't exist")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "Task not found", nil)
			return
		}
		logger.Error("delete task error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting task", nil)
		return
	}
	httputil.WriteMessageResponse(w, http.StatusOK, "Task deleted")
	logger.Info("task deleted", slog.String("task_id", id.String()))
}

func (s *Server) ReorderTasks(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	user, err := GetUserFromContext(r)
	if err != nil {
		logger.Error("reorder tasks error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}
	var items []ReorderItem
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&items)
	if err != nil {
		logger.Error("reorder tasks error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	assignments := make([]service.OrderAssignment, 0, len(items))
	for _, item := range items {
		assignments = append(assignments, service.OrderAssignment{
			TaskID: item.TaskID,
			Order:  item.Order,
		})
	}
	err = s.tasksService.Reorder(r.Context(), user.ID, assignments)
	if err != nil {
		logger.Error("reorder tasks error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while reordering tasks", nil)
		return
	}
	httputil.WriteMessageResponse(w, http.StatusOK, "Reordered")
	logger.Info("tasks reordered")
}

func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	user, err := GetUserFromContext(r)
	if err != nil {
		logger.Error("get stats error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}
	stats, err := s.statsService.Compute(r.Context(), user.ID)
	if err != nil {
		logger.Error("computing stats error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while computing stats", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, stats)
}
