package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/safi/checktick/internal/error_values"
	"github.com/safi/checktick/pkg/cleanup"
	"github.com/safi/checktick/pkg/entity"
)

type NotesRepository struct {
	conn PgConnection
}

func NewNotesRepo(cfg DBConfig) *NotesRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for notesRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for notesRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing notesRepo pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &NotesRepository{
		conn: pool,
	}
}

func NewNotesRepoWithConn(conn PgConnection) *NotesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for notesRepo: " + err.Error())
	}
	return &NotesRepository{
		conn: conn,
	}
}

func (nr *NotesRepository) Create(ctx context.Context, note *entity.StickyNote) error {
	if note == nil {
		return errors.New("note is nil")
	}
	_, err := nr.conn.Exec(ctx, `INSERT INTO sticky_notes (id, user_id, content, color, x_position, y_position, z_index, is_expanded)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		note.ID,
		note.UserID,
		note.Content,
		note.Color,
		note.X,
		note.Y,
		note.ZIndex,
		note.Expanded,
	)
	if err != nil {
		return errors.New("creating note db error: " + err.Error())
	}
	return nil
}

func (nr *NotesRepository) GetByID(ctx context.Context, id, uid uuid.UUID) (*entity.StickyNote, error) {
	var note entity.StickyNote
	row := nr.conn.QueryRow(ctx, `SELECT id, user_id, content, color, x_position, y_position, z_index, is_expanded, created_at, updated_at
		FROM sticky_notes WHERE id = $1 AND user_id = $2;`, id, uid)
	err := row.Scan(&note.ID, &note.UserID, &note.Content, &note.Color, &note.X, &note.Y, &note.ZIndex, &note.Expanded, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrNoteNotFound
		}
		return nil, errors.New("getting note by id error: " + err.Error())
	}
	return &note, nil
}

func (nr *NotesRepository) GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.StickyNote, error) {
	notes := make([]*entity.StickyNote, 0)
	rows, err := nr.conn.Query(ctx, `SELECT id, user_id, content, color, x_position, y_position, z_index, is_expanded, created_at, updated_at
		FROM sticky_notes WHERE user_id = $1;`, uid)
	if err != nil {
		return nil, errors.New("getting notes by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		n := entity.StickyNote{}
		err = rows.Scan(&n.ID, &n.UserID, &n.Content, &n.Color, &n.X, &n.Y, &n.ZIndex, &n.Expanded, &n.CreatedAt, &n.UpdatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling note error: " + err.Error())
		}
		notes = append(notes, &n)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning notes: " + rows.Err().Error())
	}
	return notes, nil
}

func (nr *NotesRepository) Update(ctx context.Context, note *entity.StickyNote) error {
	ct, err := nr.conn.Exec(ctx, `UPDATE sticky_notes SET content = $1, color = $2, x_position = $3, y_position = $4, z_index = $5, is_expanded = $6, updated_at = NOW()
		WHERE id = $7 AND user_id = $8;`,
		note.Content,
		note.Color,
		note.X,
		note.Y,
		note.ZIndex,
		note.Expanded,
		note.ID,
		note.UserID,
	)
	if err != nil {
		return errors.New("error updating note: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrNoteNotFound
	}
	return nil
}

func (nr *NotesRepository) Delete(ctx context.Context, id, uid uuid.UUID) error {
	ct, err := nr.conn.Exec(ctx, `DELETE FROM sticky_notes WHERE id = $1 AND user_id = $2;`, id, uid)
	if err != nil {
		return errors.New("error deleting note: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrNoteNotFound
	}
	return nil
}

func (nr *NotesRepository) CreateEdge(ctx context.Context, edge *entity.NoteEdge) error {
	if edge == nil {
		return errors.New("edge is nil")
	}
	_, err := nr.conn.Exec(ctx, `INSERT INTO note_edges (id, user_id, source_id, target_id) VALUES ($1, $2, $3, $4);`,
		edge.ID,
		edge.UserID,
		edge.SourceID,
		edge.TargetID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation: one of the linked notes is gone
			case "23503":
				return errorvalues.ErrNoteNotFound
			}
		}
		return errors.New("creating note edge db error: " + err.Error())
	}
	return nil
}

func (nr *NotesRepository) GetEdgesByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.NoteEdge, error) {
	edges := make([]*entity.NoteEdge, 0)
	rows, err := nr.conn.Query(ctx, `SELECT id, user_id, source_id, target_id, created_at FROM note_edges WHERE user_id = $1;`, uid)
	if err != nil {
		return nil, errors.New("getting note edges by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		e := entity.NoteEdge{}
		err = rows.Scan(&e.ID, &e.UserID, &e.SourceID, &e.TargetID, &e.CreatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling note edge error: " + err.Error())
		}
		edges = append(edges, &e)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning note edges: " + rows.Err().Error())
	}
	return edges, nil
}

func (nr *NotesRepository) DeleteEdge(ctx context.Context, id, uid uuid.UUID) error {
	ct, err := nr.conn.Exec(ctx, `DELETE FROM note_edges WHERE id = $1 AND user_id = $2;`, id, uid)
	if err != nil {
		return errors.New("error deleting note edge: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrNoteNotFound
	}
	return nil
}
