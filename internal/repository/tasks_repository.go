package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/safi/checktick/internal/error_values"
	"github.com/safi/checktick/pkg/cleanup"
	"github.com/safi/checktick/pkg/entity"
)

type TasksRepository struct {
	conn PgConnection
}

func NewTasksRepo(cfg DBConfig) *TasksRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for tasksRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for tasksRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing tasksRepo pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &TasksRepository{
		conn: pool,
	}
}

func NewTasksRepoWithConn(conn PgConnection) *TasksRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for tasksRepo: " + err.Error())
	}
	return &TasksRepository{
		conn: conn,
	}
}

// encodeSubtasks serializes the subtask list to its text blob form.
func encodeSubtasks(subtasks []entity.Subtask) string {
	if subtasks == nil {
		subtasks = []entity.Subtask{}
	}
	blob, err := sonic.ConfigDefault.MarshalToString(subtasks)
	if err != nil {
		return "[]"
	}
	return blob
}

// decodeSubtasks is lenient: a missing or corrupt blob degrades to an empty
// list, never an error. Subtasks are a secondary display field.
func decodeSubtasks(blob string) []entity.Subtask {
	subtasks := make([]entity.Subtask, 0)
	if blob == "" {
		return subtasks
	}
	if err := sonic.ConfigDefault.UnmarshalFromString(blob, &subtasks); err != nil {
		return make([]entity.Subtask, 0)
	}
	return subtasks
}

func (tr *TasksRepository) Create(ctx context.Context, task *entity.Task) error {
	if task == nil {
		return errors.New("task is nil")
	}
	_, err := tr.conn.Exec(ctx, `INSERT INTO tasks (id, user_id, title, description, priority, category, due_date, completed, sort_order, recurring, subtasks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Priority,
		task.Category,
		task.DueDate,
		task.Completed,
		task.Order,
		task.Recurring,
		encodeSubtasks(task.Subtasks),
	)
	if err != nil {
		return errors.New("creating task db error: " + err.Error())
	}
	return nil
}

func (tr *TasksRepository) GetByID(ctx context.Context, id, uid uuid.UUID) (*entity.Task, error) {
	var task entity.Task
	var blob string
	row := tr.conn.QueryRow(ctx, `SELECT id, user_id, title, description, priority, category, due_date, completed, sort_order, recurring, created_at, completed_at, subtasks
		FROM tasks WHERE id = $1 AND user_id = $2;`, id, uid)
	err := row.Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.Priority, &task.Category,
		&task.DueDate, &task.Completed, &task.Order, &task.Recurring, &task.CreatedAt, &task.CompletedAt, &blob)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrTaskNotFound
		}
		return nil, errors.New("getting task by id error: " + err.Error())
	}
	task.Subtasks = decodeSubtasks(blob)
	return &task, nil
}

func (tr *TasksRepository) GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Task, error) {
	tasks := make([]*entity.Task, 0)
	rows, err := tr.conn.Query(ctx, `SELECT id, user_id, title, description, priority, category, due_date, completed, sort_order, recurring, created_at, completed_at, subtasks
		FROM tasks WHERE user_id = $1 ORDER BY sort_order ASC;`, uid)
	if err != nil {
		return nil, errors.New("getting tasks by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		t := entity.Task{}
		var blob string
		err = rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Priority, &t.Category,
			&t.DueDate, &t.Completed, &t.Order, &t.Recurring, &t.CreatedAt, &t.CompletedAt, &blob)
		if err != nil {
			return nil, errors.New("unmarshalling task error: " + err.Error())
		}
		t.Subtasks = decodeSubtasks(blob)
		tasks = append(tasks, &t)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning tasks: " + rows.Err().Error())
	}
	return tasks, nil
}

func (tr *TasksRepository) Update(ctx context.Context, task *entity.Task) error {
	ct, err := tr.conn.Exec(ctx, `UPDATE tasks SET title = $1, description = $2, priority = $3, category = $4, due_date = $5, completed = $6, sort_order = $7, recurring = $8, completed_at = $9, subtasks = $10
		WHERE id = $11 AND user_id = $12;`,
		task.Title,
		task.Description,
		task.Priority,
		task.Category,
		task.DueDate,
		task.Completed,
		task.Order,
		task.Recurring,
		task.CompletedAt,
		encodeSubtasks(task.Subtasks),
		task.ID,
		task.UserID,
	)
	if err != nil {
		return errors.New("error updating task: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrTaskNotFound
	}
	return nil
}

// Delete removes the task row. Activity log entries for it are retained.
func (tr *TasksRepository) Delete(ctx context.Context, id, uid uuid.UUID) error {
	ct, err := tr.conn.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2;`, id, uid)
	if err != nil {
		return errors.New("error deleting task: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrTaskNotFound
	}
	return nil
}

func (tr *TasksRepository) NextOrder(ctx context.Context, uid uuid.UUID) (int, error) {
	row := tr.conn.QueryRow(ctx, `SELECT COALESCE(MAX(sort_order), -1) + 1 FROM tasks WHERE user_id = $1;`, uid)
	var next int
	if err := row.Scan(&next); err != nil {
		return 0, errors.New("getting next task order error: " + err.Error())
	}
	return next, nil
}

func (tr *TasksRepository) SetOrder(ctx context.Context, id, uid uuid.UUID, order int) error {
	ct, err := tr.conn.Exec(ctx, `UPDATE tasks SET sort_order = $1 WHERE id = $2 AND user_id = $3;`, order, id, uid)
	if err != nil {
		return errors.New("setting task order error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrTaskNotFound
	}
	return nil
}

func (tr *TasksRepository) CountByUserID(ctx context.Context, uid uuid.UUID) (int, int, error) {
	row := tr.conn.QueryRow(ctx, `SELECT COUNT(*), COUNT(*) FILTER (WHERE completed) FROM tasks WHERE user_id = $1;`, uid)
	var total, completed int
	if err := row.Scan(&total, &completed); err != nil {
		return 0, 0, errors.New("counting tasks error: " + err.Error())
	}
	return total, completed, nil
}

// CountDueOn compares due_date by string equality, the column holds a
// calendar date, not a timestamp.
func (tr *TasksRepository) CountDueOn(ctx context.Context, uid uuid.UUID, date string) (int, int, error) {
	row := tr.conn.QueryRow(ctx, `SELECT COUNT(*), COUNT(*) FILTER (WHERE completed) FROM tasks WHERE user_id = $1 AND due_date = $2;`, uid, date)
	var total, completed int
	if err := row.Scan(&total, &completed); err != nil {
		return 0, 0, errors.New("counting due tasks error: " + err.Error())
	}
	return total, completed, nil
}

func (tr *TasksRepository) CountCompletedBetween(ctx context.Context, uid uuid.UUID, from, to time.Time) (int, error) {
	row := tr.conn.QueryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND completed AND completed_at >= $2 AND completed_at <= $3;`, uid, from, to)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, errors.New("counting completed tasks in window error: " + err.Error())
	}
	return count, nil
}
