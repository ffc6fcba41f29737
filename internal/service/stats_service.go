package service

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/safi/checktick/internal/repository"
	"github.com/safi/checktick/pkg/entity"
)

const dateLayout = "2006-01-02"

// streakScanLimit bounds the backwards day scan.
const streakScanLimit = 365

type StatsService struct {
	tasksRepo    repository.TasksRepositoryI
	logRepo      repository.ActivityLogRepositoryI
	pomodoroRepo repository.PomodoroRepositoryI
}

func NewStatsService(tasksRepo repository.TasksRepositoryI, logRepo repository.ActivityLogRepositoryI, pomodoroRepo repository.PomodoroRepositoryI) *StatsService {
	if tasksRepo == nil || logRepo == nil || pomodoroRepo == nil {
		log.Fatal("on stats service provided nil repos")
	}
	return &StatsService{
		tasksRepo:    tasksRepo,
		logRepo:      logRepo,
		pomodoroRepo: pomodoroRepo,
	}
}

// countStreak counts consecutive calendar days with at least one completion,
// anchored at today. If today has none the streak is 0, there is no look-back
// to yesterday.
func countStreak(completions []time.Time, today time.Time) int {
	seen := make(map[string]struct{}, len(completions))
	for _, c := range completions {
		seen[c.UTC().Format(dateLayout)] = struct{}{}
	}
	streak := 0
	day := today.UTC()
	for i := 0; i < streakScanLimit; i++ {
		if _, ok := seen[day.Format(dateLayout)]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// weekStart returns UTC midnight of the Monday of day's week.
func weekStart(day time.Time) time.Time {
	day = day.UTC()
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(midnight.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -offset)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func (serv *StatsService) weekData(ctx context.Context, uid uuid.UUID, start time.Time) ([]entity.DayCount, error) {
	data := make([]entity.DayCount, 0, 7)
	for i := 0; i < 7; i++ {
		from := start.AddDate(0, 0, i)
		// Full-day window, inclusive of both endpoints
		to := from.AddDate(0, 0, 1).Add(-time.Nanosecond)
		count, err := serv.tasksRepo.CountCompletedBetween(ctx, uid, from, to)
		if err != nil {
			return nil, err
		}
		data = append(data, entity.DayCount{
			Day:       from.Weekday().String()[:3],
			Completed: count,
		})
	}
	return data, nil
}

func (serv *StatsService) Compute(ctx context.Context, uid uuid.UUID) (*entity.Stats, error) {
	now := time.Now().UTC()
	total, completed, err := serv.tasksRepo.CountByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	todayTasks, todayCompleted, err := serv.tasksRepo.CountDueOn(ctx, uid, now.Format(dateLayout))
	if err != nil {
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	completions, err := serv.logRepo.CompletionDates(ctx, uid)
	if err != nil {
		return nil, errors.New("activity log repository error: " + err.Error())
	}
	thisWeekStart := weekStart(now)
	thisWeek, err := serv.weekData(ctx, uid, thisWeekStart)
	if err != nil {
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	lastWeek, err := serv.weekData(ctx, uid, thisWeekStart.AddDate(0, 0, -7))
	if err != nil {
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	pomodoroCount, err := serv.pomodoroRepo.CountCompleted(ctx, uid)
	if err != nil {
		return nil, errors.New("pomodoro repository error: " + err.Error())
	}
	rate := 0.0
	if total > 0 {
		rate = round1(float64(completed) / float64(total) * 100)
	}
	return &entity.Stats{
		Total:            total,
		Completed:        completed,
		Pending:          total - completed,
		TodayTasks:       todayTasks,
		TodayCompleted:   todayCompleted,
		Streak:           countStreak(completions, now),
		CompletionRate:   rate,
		PomodoroSessions: pomodoroCount,
		ThisWeek:         thisWeek,
		LastWeek:         lastWeek,
	}, nil
}
