package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/safi/checktick/internal/error_values"
	"github.com/safi/checktick/pkg/cleanup"
	"github.com/safi/checktick/pkg/entity"
)

type SessionsRepository struct {
	conn PgConnection
}

func NewSessionsRepo(cfg DBConfig) *SessionsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for sessionsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for sessionsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing sessionsRepo pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &SessionsRepository{
		conn: pool,
	}
}

func NewSessionsRepoWithConn(conn PgConnection) *SessionsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for sessionsRepo: " + err.Error())
	}
	return &SessionsRepository{
		conn: conn,
	}
}

func (sr *SessionsRepository) Create(ctx context.Context, session *entity.Session) error {
	if session == nil {
		return errors.New("session is nil")
	}
	_, err := sr.conn.Exec(ctx, `INSERT INTO sessions (token, user_id, expires_at) VALUES ($1, $2, $3);`,
		session.Token,
		session.UserID,
		session.ExpiresAt,
	)
	if err != nil {
		return errors.New("creating session db error: " + err.Error())
	}
	return nil
}

func (sr *SessionsRepository) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	var session entity.Session
	session.Token = token
	row := sr.conn.QueryRow(ctx, `SELECT user_id, expires_at, created_at FROM sessions WHERE token = $1;`, token)
	if err := row.Scan(&session.UserID, &session.ExpiresAt, &session.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrSessionNotFound
		}
		return nil, errors.New("searching session by token error: " + err.Error())
	}
	return &session, nil
}

// DeleteByToken is idempotent: revoking an absent token is not an error.
func (sr *SessionsRepository) DeleteByToken(ctx context.Context, token string) error {
	_, err := sr.conn.Exec(ctx, `DELETE FROM sessions WHERE token = $1;`, token)
	if err != nil {
		return errors.New("deleting session error: " + err.Error())
	}
	return nil
}

func (sr *SessionsRepository) DeleteByUserID(ctx context.Context, uid uuid.UUID) error {
	_, err := sr.conn.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1;`, uid)
	if err != nil {
		return errors.New("deleting user sessions error: " + err.Error())
	}
	return nil
}
