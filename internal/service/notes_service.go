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

type NotesService struct {
	repo repository.NotesRepositoryI
}

func NewNotesService(notesRepo repository.NotesRepositoryI) *NotesService {
	if notesRepo == nil {
		log.Fatal("provided nil notesRepo")
	}
	return &NotesService{
		repo: notesRepo,
	}
}

func (ns *NotesService) List(ctx context.Context, uid uuid.UUID) ([]*entity.StickyNote, error) {
	notes, err := ns.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("notes repository error: " + err.Error())
	}
	return notes, nil
}

func (ns *NotesService) Create(ctx context.Context, uid uuid.UUID, req *CreateNoteRequest) (*entity.StickyNote, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	note := entity.StickyNote{
		ID:        uuid.New(),
		UserID:    uid,
		Content:   req.Content,
		Color:     req.Color,
		X:         req.X,
		Y:         req.Y,
		ZIndex:    req.ZIndex,
		Expanded:  req.Expanded,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if note.Color == "" {
		note.Color = "yellow"
	}
	err := ns.repo.Create(ctx, &note)
	if err != nil {
		return nil, errors.New("notes repository error: " + err.Error())
	}
	return &note, nil
}

func (ns *NotesService) Update(ctx context.Context, id, uid uuid.UUID, req *UpdateNoteRequest) (*entity.StickyNote, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	note, err := ns.repo.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNoteNotFound) {
			return nil, err
		}
		return nil, errors.New("notes repository error: " + err.Error())
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Color != nil {
		note.Color = *req.Color
	}
	if req.X != nil {
		note.X = *req.X
	}
	if req.Y != nil {
		note.Y = *req.Y
	}
	if req.ZIndex != nil {
		note.ZIndex = *req.ZIndex
	}
	if req.Expanded != nil {
		note.Expanded = *req.Expanded
	}
	note.UpdatedAt = time.Now().UTC()
	err = ns.repo.Update(ctx, note)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNoteNotFound) {
			return nil, err
		}
		return nil, errors.New("notes repository error: " + err.Error())
	}
	return note, nil
}

func (ns *NotesService) Delete(ctx context.Context, id, uid uuid.UUID) error {
	err := ns.repo.Delete(ctx, id, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNoteNotFound) {
			return err
		}
		return errors.New("notes repository error: " + err.Error())
	}
	return nil
}

func (ns *NotesService) ListEdges(ctx context.Context, uid uuid.UUID) ([]*entity.NoteEdge, error) {
	edges, err := ns.repo.GetEdgesByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("notes repository error: " + err.Error())
	}
	return edges, nil
}

// Link verifies both endpoints belong to uid before creating the edge.
func (ns *NotesService) Link(ctx context.Context, uid, sourceID, targetID uuid.UUID) (*entity.NoteEdge, error) {
	if _, err := ns.repo.GetByID(ctx, sourceID, uid); err != nil {
		if errors.Is(err, errorvalues.ErrNoteNotFound) {
			return nil, err
		}
		return nil, errors.New("notes repository error: " + err.Error())
	}
	if _, err := ns.repo.GetByID(ctx, targetID, uid); err != nil {
		if errors.Is(err, errorvalues.ErrNoteNotFound) {
			return nil, err
		}
		return nil, errors.New("notes repository error: " + err.Error())
	}
	edge := entity.NoteEdge{
		ID:        uuid.New(),
		UserID:    uid,
		SourceID:  sourceID,
		TargetID:  targetID,
		CreatedAt: time.Now().UTC(),
	}
	err := ns.repo.CreateEdge(ctx, &edge)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNoteNotFound) {
			return nil, err
		}
		return nil, errors.New("notes repository error: " + err.Error())
	}
	return &edge, nil
}

func (ns *NotesService) Unlink(ctx context.Context, id, uid uuid.UUID) error {
	err := ns.repo.DeleteEdge(ctx, id, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNoteNotFound) {
			return err
		}
		return errors.New("notes repository error: " + err.Error())
	}
	return nil
}
