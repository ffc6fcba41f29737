package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/safi/checktick/internal/error_values"
	"github.com/safi/checktick/internal/service"
	"github.com/safi/checktick/pkg/entity"
	"github.com/stretchr/testify/assert"
)

const stateNoteNotFoundError = stateDanglingUser + 1

type notesRepoMock struct {
	state mockState
	// ids the mock treats as owned by the test user
	owned map[uuid.UUID]bool
	edge  *entity.NoteEdge
}

func newNotesRepoMock(ownedIDs ...uuid.UUID) *notesRepoMock {
	owned := make(map[uuid.UUID]bool, len(ownedIDs))
	for _, id := range ownedIDs {
		owned[id] = true
	}
	return &notesRepoMock{owned: owned}
}

func (nrmock *notesRepoMock) Create(ctx context.Context, note *entity.StickyNote) error {
	if nrmock.state == stateDBError {
		return errors.New("db error")
	}
	nrmock.owned[note.ID] = true
	return nil
}

func (nrmock *notesRepoMock) GetByID(ctx context.Context, id, uid uuid.UUID) (*entity.StickyNote, error) {
	switch nrmock.state {
	case stateNoteNotFoundError:
		return nil, errorvalues.ErrNoteNotFound
	case stateDBError:
		return nil, errors.New("db error")
	default:
		if !nrmock.owned[id] {
			return nil, errorvalues.ErrNoteNotFound
		}
		return &entity.StickyNote{
			ID:        id,
			UserID:    uid,
			Content:   "test_note",
			Color:     "yellow",
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		}, nil
	}
}

func (nrmock *notesRepoMock) GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.StickyNote, error) {
	if nrmock.state == stateDBError {
		return nil, errors.New("db error")
	}
	notes := make([]*entity.StickyNote, 0, len(nrmock.owned))
	for id := range nrmock.owned {
		notes = append(notes, &entity.StickyNote{ID: id, UserID: uid})
	}
	return notes, nil
}

func (nrmock *notesRepoMock) Update(ctx context.Context, note *entity.StickyNote) error {
	switch nrmock.state {
	case stateNoteNotFoundError:
		return errorvalues.ErrNoteNotFound
	case stateDBError:
		return errors.New("db error")
	default:
		return nil
	}
}

func (nrmock *notesRepoMock) Delete(ctx context.Context, id, uid uuid.UUID) error {
	switch nrmock.state {
	case stateNoteNotFoundError:
		return errorvalues.ErrNoteNotFound
	case stateDBError:
		return errors.New("db error")
	default:
		return nil
	}
}

func (nrmock *notesRepoMock) CreateEdge(ctx context.Context, edge *entity.NoteEdge) error {
	if nrmock.state == stateDBError {
		return errors.New("db error")
	}
	nrmock.edge = edge
	return nil
}

func (nrmock *notesRepoMock) GetEdgesByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.NoteEdge, error) {
	if nrmock.state == stateDBError {
		return nil, errors.New("db error")
	}
	if nrmock.edge == nil {
		return []*entity.NoteEdge{}, nil
	}
	return []*entity.NoteEdge{nrmock.edge}, nil
}

func (nrmock *notesRepoMock) DeleteEdge(ctx context.Context, id, uid uuid.UUID) error {
	switch nrmock.state {
	case stateNoteNotFoundError:
		return errorvalues.ErrNoteNotFound
	case stateDBError:
		return errors.New("db error")
	default:
		return nil
	}
}

func TestCreateNote(t *testing.T) {
	repoMock := newNotesRepoMock()
	s := service.NewNotesService(repoMock)
	ctx := context.Background()
	t.Run("success with default color", func(t *testing.T) {
		note, err := s.Create(ctx, userID, &service.CreateNoteRequest{
			Content: "remember this",
		})
		assert.NoError(t, err)
		assert.Equal(t, "yellow", note.Color)
		assert.Equal(t, userID, note.UserID)
	})
	t.Run("explicit color kept", func(t *testing.T) {
		note, err := s.Create(ctx, userID, &service.CreateNoteRequest{
			Content: "remember this",
			Color:   "pink",
		})
		assert.NoError(t, err)
		assert.Equal(t, "pink", note.Color)
	})
	t.Run("db error", func(t *testing.T) {
		repoMock.state = stateDBError
		_, err := s.Create(ctx, userID, &service.CreateNoteRequest{})
		assert.Error(t, err)
		repoMock.state = stateSuccess
	})
}

func TestUpdateNote(t *testing.T) {
	noteID := uuid.New()
	repoMock := newNotesRepoMock(noteID)
	s := service.NewNotesService(repoMock)
	ctx := context.Background()
	t.Run("partial update", func(t *testing.T) {
		x, y := 40, 120
		note, err := s.Update(ctx, noteID, userID, &service.UpdateNoteRequest{
			X: &x,
			Y: &y,
		})
		assert.NoError(t, err)
		assert.Equal(t, 40, note.X)
		assert.Equal(t, 120, note.Y)
		assert.Equal(t, "test_note", note.Content)
	})
	t.Run("note not found", func(t *testing.T) {
		content := "updated"
		_, err := s.Update(ctx, uuid.New(), userID, &service.UpdateNoteRequest{
			Content: &content,
		})
		assert.ErrorIs(t, err, errorvalues.ErrNoteNotFound)
	})
}

func TestLinkNotes(t *testing.T) {
	sourceID := uuid.New()
	targetID := uuid.New()
	repoMock := newNotesRepoMock(sourceID, targetID)
	s := service.NewNotesService(repoMock)
	ctx := context.Background()
	t.Run("links two owned notes", func(t *testing.T) {
		edge, err := s.Link(ctx, userID, sourceID, targetID)
		assert.NoError(t, err)
		assert.Equal(t, sourceID, edge.SourceID)
		assert.Equal(t, targetID, edge.TargetID)
		assert.Equal(t, edge, repoMock.edge)
	})
	t.Run("unowned source rejected", func(t *testing.T) {
		_, err := s.Link(ctx, userID, uuid.New(), targetID)
		assert.ErrorIs(t, err, errorvalues.ErrNoteNotFound)
	})
	t.Run("unowned target rejected", func(t *testing.T) {
		_, err := s.Link(ctx, userID, sourceID, uuid.New())
		assert.ErrorIs(t, err, errorvalues.ErrNoteNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		repoMock.state = stateDBError
		_, err := s.Link(ctx, userID, sourceID, targetID)
		assert.Error(t, err)
		repoMock.state = stateSuccess
	})
}

func TestUnlinkNotes(t *testing.T) {
	repoMock := newNotesRepoMock()
	s := service.NewNotesService(repoMock)
	ctx := context.Background()
	t.Run("unlinked", func(t *testing.T) {
		err := s.Unlink(ctx, uuid.New(), userID)
		assert.NoError(t, err)
	})
	t.Run("edge not found", func(t *testing.T) {
		repoMock.state = stateNoteNotFoundError
		err := s.Unlink(ctx, uuid.New(), userID)
		assert.ErrorIs(t, err, errorvalues.ErrNoteNotFound)
		repoMock.state = stateSuccess
	})
}
