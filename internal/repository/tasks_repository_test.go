package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	errorvalues "github.com/safi/checktick/internal/error_values"
	"github.com/safi/checktick/internal/repository"
	"github.com/safi/checktick/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
)

var taskColumns = []string{"id", "user_id", "title", "description", "priority", "category", "due_date", "completed", "sort_order", "recurring", "created_at", "completed_at", "subtasks"}

func TestCreateTask(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewTasksRepoWithConn(conn)
	task := entity.Task{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Title:    "test_task",
		Priority: entity.PriorityMedium,
		Category: "personal",
		Order:    0,
		Subtasks: []entity.Subtask{{Title: "sub", Completed: false}},
	}
	query := regexp.QuoteMeta(`INSERT INTO tasks (id, user_id, title, description, priority, category, due_date, completed, sort_order, recurring, subtasks)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`)
	t.Run("successfully created with serialized subtasks", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(task.ID, task.UserID, task.Title, task.Description, task.Priority, task.Category,
				task.DueDate, task.Completed, task.Order, task.Recurring, `[{"title":"sub","completed":false}]`).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		err := repo.Create(ctx, &task)
		assert.NoError(t, err)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(task.ID, task.UserID, task.Title, task.Description, task.Priority, task.Category,
				task.DueDate, task.Completed, task.Order, task.Recurring, `[{"title":"sub","completed":false}]`).
			WillReturnError(errors.New("db error"))
		err := repo.Create(ctx, &task)
		assert.Error(t, err)
	})
}

func TestGetTaskByID(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewTasksRepoWithConn(conn)
	id := uuid.New()
	uid := uuid.New()
	created := time.Now().UTC()
	query := regexp.QuoteMeta(`SELECT id, user_id, title, description, priority, category, due_date, completed, sort_order, recurring, created_at, completed_at, subtasks
			FROM tasks WHERE id = $1 AND user_id = $2;`)
	t.Run("found with deserialized subtasks", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(id, uid).
			WillReturnRows(pgxmock.NewRows(taskColumns).
				AddRow(id, uid, "test_task", "", "medium", "personal", "", false, 0, "", created, nil, `[{"title":"sub","completed":true}]`))
		task, err := repo.GetByID(ctx, id, uid)
		assert.NoError(t, err)
		assert.Equal(t, []entity.Subtask{{Title: "sub", Completed: true}}, task.Subtasks)
	})
	t.Run("corrupt subtasks blob degrades to empty list", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(id, uid).
			WillReturnRows(pgxmock.NewRows(taskColumns).
				AddRow(id, uid, "test_task", "", "medium", "personal", "", false, 0, "", created, nil, `{not json`))
		task, err := repo.GetByID(ctx, id, uid)
		assert.NoError(t, err)
		assert.Equal(t, []entity.Subtask{}, task.Subtasks)
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(id, uid).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.GetByID(ctx, id, uid)
		assert.ErrorIs(t, err, errorvalues.ErrTaskNotFound)
	})
}

func TestGetTasksByUserID(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewTasksRepoWithConn(conn)
	uid := uuid.New()
	created := time.Now().UTC()
	query := regexp.QuoteMeta(`SELECT id, user_id, title, description, priority, category, due_date, completed, sort_order, recurring, created_at, completed_at, subtasks
			FROM tasks WHERE user_id = $1 ORDER BY sort_order ASC;`)
	t.Run("listed in display order", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid).
			WillReturnRows(pgxmock.NewRows(taskColumns).
				AddRow(uuid.New(), uid, "first", "", "medium", "personal", "", false, 0, "", created, nil, `[]`).
				AddRow(uuid.New(), uid, "second", "", "high", "work", "", false, 1, "", created, nil, ``))
		tasks, err := repo.GetByUserID(ctx, uid)
		assert.NoError(t, err)
		assert.Len(t, tasks, 2)
		assert.Equal(t, "first", tasks[0].Title)
		assert.Equal(t, 1, tasks[1].Order)
		// Empty blob column still yields an empty list, not nil
		assert.Equal(t, []entity.Subtask{}, tasks[1].Subtasks)
	})
	t.Run("empty result", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid).
			WillReturnRows(pgxmock.NewRows(taskColumns))
		tasks, err := repo.GetByUserID(ctx, uid)
		assert.NoError(t, err)
		assert.Empty(t, tasks)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid).
			WillReturnError(errors.New("db error"))
		_, err := repo.GetByUserID(ctx, uid)
		assert.Error(t, err)
	})
}

func TestUpdateTaskRow(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewTasksRepoWithConn(conn)
	now := time.Now().UTC()
	task := entity.Task{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Title:       "test_task",
		Priority:    entity.PriorityHigh,
		Category:    "personal",
		Completed:   true,
		CompletedAt: &now,
		Subtasks:    []entity.Subtask{},
	}
	query := regexp.QuoteMeta(`UPDATE tasks SET title = $1, description = $2, priority = $3, category = $4, due_date = $5, completed = $6, sort_order = $7, recurring = $8, completed_at = $9, subtasks = $10
			WHERE id = $11 AND user_id = $12;`)
	args := []any{task.Title, task.Description, task.Priority, task.Category, task.DueDate,
		task.Completed, task.Order, task.Recurring, task.CompletedAt, `[]`, task.ID, task.UserID}
	t.Run("updated", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(args...).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		err := repo.Update(ctx, &task)
		assert.NoError(t, err)
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(args...).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		err := repo.Update(ctx, &task)
		assert.ErrorIs(t, err, errorvalues.ErrTaskNotFound)
	})
}

func TestDeleteTaskRow(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewTasksRepoWithConn(conn)
	id := uuid.New()
	uid := uuid.New()
	query := regexp.QuoteMeta(`DELETE FROM tasks WHERE id = $1 AND user_id = $2;`)
	t.Run("deleted", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(id, uid).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		err := repo.Delete(ctx, id, uid)
		assert.NoError(t, err)
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(id, uid).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		err := repo.Delete(ctx, id, uid)
		assert.ErrorIs(t, err, errorvalues.ErrTaskNotFound)
	})
}

func TestNextOrder(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewTasksRepoWithConn(conn)
	uid := uuid.New()
	query := regexp.QuoteMeta(`SELECT COALESCE(MAX(sort_order), -1) + 1 FROM tasks WHERE user_id = $1;`)
	t.Run("first task gets 0", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid).
			WillReturnRows(pgxmock.NewRows([]string{"next"}).AddRow(0))
		next, err := repo.NextOrder(ctx, uid)
		assert.NoError(t, err)
		assert.Equal(t, 0, next)
	})
	t.Run("follows max order", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid).
			WillReturnRows(pgxmock.NewRows([]string{"next"}).AddRow(5))
		next, err := repo.NextOrder(ctx, uid)
		assert.NoError(t, err)
		assert.Equal(t, 5, next)
	})
}

func TestSetOrder(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewTasksRepoWithConn(conn)
	id := uuid.New()
	uid := uuid.New()
	query := regexp.QuoteMeta(`UPDATE tasks SET sort_order = $1 WHERE id = $2 AND user_id = $3;`)
	t.Run("applied", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(3, id, uid).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		err := repo.SetOrder(ctx, id, uid, 3)
		assert.NoError(t, err)
	})
	t.Run("unowned task reports not found", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(3, id, uid).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		err := repo.SetOrder(ctx, id, uid, 3)
		assert.ErrorIs(t, err, errorvalues.ErrTaskNotFound)
	})
}

func TestTaskCounts(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewTasksRepoWithConn(conn)
	uid := uuid.New()
	t.Run("count by user", func(t *testing.T) {
		query := regexp.QuoteMeta(`SELECT COUNT(*), COUNT(*) FILTER (WHERE completed) FROM tasks WHERE user_id = $1;`)
		conn.ExpectQuery(query).
			WithArgs(uid).
			WillReturnRows(pgxmock.NewRows([]string{"total", "completed"}).AddRow(3, 1))
		total, completed, err := repo.CountByUserID(ctx, uid)
		assert.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Equal(t, 1, completed)
	})
	t.Run("count due on date", func(t *testing.T) {
		query := regexp.QuoteMeta(`SELECT COUNT(*), COUNT(*) FILTER (WHERE completed) FROM tasks WHERE user_id = $1 AND due_date = $2;`)
		conn.ExpectQuery(query).
			WithArgs(uid, "2026-08-31").
			WillReturnRows(pgxmock.NewRows([]string{"total", "completed"}).AddRow(2, 2))
		total, completed, err := repo.CountDueOn(ctx, uid, "2026-08-31")
		assert.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Equal(t, 2, completed)
	})
	t.Run("count completed in window", func(t *testing.T) {
		from := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 0, 1).Add(-time.Nanosecond)
		query := regexp.QuoteMeta(`SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND completed AND completed_at >= $2 AND completed_at <= $3;`)
		conn.ExpectQuery(query).
			WithArgs(uid, from, to).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(4))
		count, err := repo.CountCompletedBetween(ctx, uid, from, to)
		assert.NoError(t, err)
		assert.Equal(t, 4, count)
	})
}
