package service

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/safi/checktick/internal/error_values"
	"github.com/safi/checktick/internal/repository"
	"github.com/safi/checktick/pkg/entity"
)

type TasksService struct {
	repo    repository.TasksRepositoryI
	logRepo repository.ActivityLogRepositoryI
}

func NewTasksService(tasksRepo repository.TasksRepositoryI, logRepo repository.ActivityLogRepositoryI) *TasksService {
	if tasksRepo == nil || logRepo == nil {
		log.Fatal("on tasks service provided nil repos")
	}
	return &TasksService{
		repo:    tasksRepo,
		logRepo: logRepo,
	}
}

func validateStruct(req any) error {
	err := validate.Struct(req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errors.New("validation error: ")
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return err
		}
		return errors.New("validation unexpected error: " + err.Error())
	}
	return nil
}

// appendEntry is best-effort: the task write is already committed, a failed
// log append is reported but never fails the request.
func (ts *TasksService) appendEntry(ctx context.Context, uid uuid.UUID, action string, task *entity.Task) {
	err := ts.logRepo.Append(ctx, &entity.ActivityEntry{
		UserID:    uid,
		Action:    action,
		TaskID:    task.ID,
		TaskTitle: task.Title,
	})
	if err != nil {
		slog.Default().Warn("appending activity entry failed",
			slog.String("action", action),
			slog.String("task_id", task.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

func (ts *TasksService) List(ctx context.Context, uid uuid.UUID) ([]*entity.Task, error) {
	tasks, err := ts.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	return tasks, nil
}

func (ts *TasksService) Create(ctx context.Context, uid uuid.UUID, req *CreateTaskRequest) (*entity.Task, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	order, err := ts.repo.NextOrder(ctx, uid)
	if err != nil {
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	task := entity.Task{
		ID:          uuid.New(),
		UserID:      uid,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
		DueDate:     req.DueDate,
		Order:       order,
		Recurring:   req.Recurring,
		CreatedAt:   time.Now().UTC(),
		Subtasks:    req.Subtasks,
	}
	if task.Priority == "" {
		task.Priority = entity.PriorityMedium
	}
	if task.Category == "" {
		task.Category = "personal"
	}
	if task.Subtasks == nil {
		task.Subtasks = make([]entity.Subtask, 0)
	}
	err = ts.repo.Create(ctx, &task)
	if err != nil {
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	ts.appendEntry(ctx, uid, entity.ActionCreated, &task)
	return &task, nil
}

// Update applies provided fields by direct replacement. The incomplete to
// complete transition is detected against the pre-update row and stamps
// completed_at exactly once; an explicit reopen does not clear it.
func (ts *TasksService) Update(ctx context.Context, id, uid uuid.UUID, req *UpdateTaskRequest) (*entity.Task, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	task, err := ts.repo.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrTaskNotFound) {
			return nil, err
		}
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	wasCompleted := task.Completed
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Category != nil {
		task.Category = *req.Category
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	if req.Order != nil {
		task.Order = *req.Order
	}
	if req.Recurring != nil {
		task.Recurring = *req.Recurring
	}
	if req.Subtasks != nil {
		task.Subtasks = *req.Subtasks
	}
	newlyCompleted := task.Completed && !wasCompleted
	if newlyCompleted {
		now := time.Now().UTC()
		task.CompletedAt = &now
	}
	err = ts.repo.Update(ctx, task)
	if err != nil {
		if errors.Is(err, errorvalues.ErrTaskNotFound) {
			return nil, err
		}
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	if newlyCompleted {
		ts.appendEntry(ctx, uid, entity.ActionCompleted, task)
	}
	return task, nil
}

func (ts *TasksService) Delete(ctx context.Context, id, uid uuid.UUID) error {
	err := ts.repo.Delete(ctx, id, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrTaskNotFound) {
			return err
		}
		return errors.New("tasks repository error: " + err.Error())
	}
	return nil
}

// Reorder is not atomic across assignments: each applied one is durable on
// its own, and ids not owned by uid are skipped silently.
func (ts *TasksService) Reorder(ctx context.Context, uid uuid.UUID, assignments []OrderAssignment) error {
	for _, a := range assignments {
		err := ts.repo.SetOrder(ctx, a.TaskID, uid, a.Order)
		if err != nil {
			if errors.Is(err, errorvalues.ErrTaskNotFound) {
				continue
			}
			return errors.New("tasks repository error: " + err.Error())
		}
	}
	return nil
}
