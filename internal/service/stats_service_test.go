package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	errorvalues "github.com/safi/checktick/internal/error_values"
	"github.com/safi/checktick/internal/service"
	"github.com/safi/checktick/pkg/entity"
	"github.com/stretchr/testify/assert"
)

type pomodoroRepoMock struct {
	state mockState
}

func (prmock *pomodoroRepoMock) Create(ctx context.Context, session *entity.PomodoroSession) error {
	if prmock.state == stateDBError {
		return errors.New("db error")
	}
	return nil
}

func (prmock *pomodoroRepoMock) SetCompleted(ctx context.Context, id, uid uuid.UUID) error {
	switch prmock.state {
	case statePomodoroNotFoundError:
		return errorvalues.ErrPomodoroNotFound
	case stateDBError:
		return errors.New("db error")
	default:
		return nil
	}
}

func (prmock *pomodoroRepoMock) CountCompleted(ctx context.Context, uid uuid.UUID) (int, error) {
	if prmock.state == stateDBError {
		return 0, errors.New("db error")
	}
	return 3, nil
}

func TestComputeStats(t *testing.T) {
	repoMock := newTasksRepoMock()
	logMock := &activityLogMock{}
	pomodoroMock := &pomodoroRepoMock{}
	s := service.NewStatsService(repoMock, logMock, pomodoroMock)
	ctx := context.Background()
	t.Run("assembled", func(t *testing.T) {
		stats, err := s.Compute(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, 4, stats.Total)
		assert.Equal(t, 2, stats.Completed)
		assert.Equal(t, 2, stats.Pending)
		assert.Equal(t, 2, stats.TodayTasks)
		assert.Equal(t, 1, stats.TodayCompleted)
		// Mock reports completions today and yesterday
		assert.Equal(t, 2, stats.Streak)
		assert.Equal(t, 50.0, stats.CompletionRate)
		assert.Equal(t, 3, stats.PomodoroSessions)
		assert.Len(t, stats.ThisWeek, 7)
		assert.Len(t, stats.LastWeek, 7)
		assert.Equal(t, "Mon", stats.ThisWeek[0].Day)
		assert.Equal(t, "Sun", stats.ThisWeek[6].Day)
		for _, dc := range stats.ThisWeek {
			assert.Equal(t, 1, dc.Completed)
		}
	})
	t.Run("tasks repo error", func(t *testing.T) {
		repoMock.state = stateDBError
		_, err := s.Compute(ctx, userID)
		assert.Error(t, err)
		repoMock.state = stateSuccess
	})
	t.Run("activity log error", func(t *testing.T) {
		logMock.state = stateDBError
		_, err := s.Compute(ctx, userID)
		assert.Error(t, err)
		logMock.state = stateSuccess
	})
	t.Run("pomodoro repo error", func(t *testing.T) {
		pomodoroMock.state = stateDBError
		_, err := s.Compute(ctx, userID)
		assert.Error(t, err)
		pomodoroMock.state = stateSuccess
	})
}
