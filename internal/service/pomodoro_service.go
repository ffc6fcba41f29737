package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/safi/checktick/internal/error_values"
	"github.com/safi/checktick/internal/repository"
	"github.com/safi/checktick/pkg/entity"
)

const defaultPomodoroMinutes = 25

type PomodoroService struct {
	repo repository.PomodoroRepositoryI
}

func NewPomodoroService(pomodoroRepo repository.PomodoroRepositoryI) *PomodoroService {
	if pomodoroRepo == nil {
		log.Fatal("provided nil pomodoroRepo")
	}
	return &PomodoroService{
		repo: pomodoroRepo,
	}
}

func (ps *PomodoroService) Start(ctx context.Context, uid uuid.UUID, taskID *uuid.UUID, duration int) (*entity.PomodoroSession, error) {
	if duration <= 0 {
		duration = defaultPomodoroMinutes
	}
	session := entity.PomodoroSession{
		ID:        uuid.New(),
		UserID:    uid,
		TaskID:    taskID,
		Duration:  duration,
		CreatedAt: time.Now().UTC(),
	}
	err := ps.repo.Create(ctx, &session)
	if err != nil {
		return nil, errors.New("pomodoro repository error: " + err.Error())
	}
	return &session, nil
}

func (ps *PomodoroService) Complete(ctx context.Context, id, uid uuid.UUID) error {
	err := ps.repo.SetCompleted(ctx, id, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrPomodoroNotFound) {
			return err
		}
		return errors.New("pomodoro repository error: " + err.Error())
	}
	return nil
}
