package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/safi/checktick/pkg/cleanup"
	"github.com/safi/checktick/pkg/entity"
)

type ActivityLogRepository struct {
	conn PgConnection
}

func NewActivityLogRepo(cfg DBConfig) *ActivityLogRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for activityLogRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for activityLogRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing activityLogRepo pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &ActivityLogRepository{
		conn: pool,
	}
}

func NewActivityLogRepoWithConn(conn PgConnection) *ActivityLogRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for activityLogRepo: " + err.Error())
	}
	return &ActivityLogRepository{
		conn: conn,
	}
}

func (ar *ActivityLogRepository) Append(ctx context.Context, entry *entity.ActivityEntry) error {
	if entry == nil {
		return errors.New("activity entry is nil")
	}
	_, err := ar.conn.Exec(ctx, `INSERT INTO activity_log (user_id, action, task_id, task_title) VALUES ($1, $2, $3, $4);`,
		entry.UserID,
		entry.Action,
		entry.TaskID,
		entry.TaskTitle,
	)
	if err != nil {
		return errors.New("appending activity entry error: " + err.Error())
	}
	return nil
}

func (ar *ActivityLogRepository) CompletionDates(ctx context.Context, uid uuid.UUID) ([]time.Time, error) {
	rows, err := ar.conn.Query(ctx, `SELECT created_at FROM activity_log WHERE user_id = $1 AND action = $2 ORDER BY created_at DESC;`,
		uid,
		entity.ActionCompleted,
	)
	if err != nil {
		return nil, errors.New("getting completion dates error: " + err.Error())
	}
	defer rows.Close()
	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err = rows.Scan(&d); err != nil {
			return nil, errors.New("completion date row parsing error: " + err.Error())
		}
		dates = append(dates, d)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected completion dates rows error: " + rows.Err().Error())
	}
	return dates, nil
}
