package service

import (
	"context"
	"encoding/hex"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/safi/checktick/internal/error_values"
	"github.com/safi/checktick/internal/repository"
	"github.com/safi/checktick/pkg/entity"
)

var sessionTTL = 7 * 24 * time.Hour

type SessionService struct {
	sessionsRepo repository.SessionsRepositoryI
	usersRepo    repository.UsersRepositoryI
}

func NewSessionService(sessionsRepo repository.SessionsRepositoryI, usersRepo repository.UsersRepositoryI) *SessionService {
	if sessionsRepo == nil || usersRepo == nil {
		log.Fatal("on session service provided nil repos")
	}
	return &SessionService{
		sessionsRepo: sessionsRepo,
		usersRepo:    usersRepo,
	}
}

// newToken builds an opaque globally unique token, "st_" plus 32 random hex
// characters.
func newToken() string {
	id := uuid.New()
	return "st_" + hex.EncodeToString(id[:])
}

// Create enforces the single-active-session policy: all prior sessions of uid
// are invalidated before the new one is persisted.
func (serv *SessionService) Create(ctx context.Context, uid uuid.UUID) (*entity.Session, error) {
	err := serv.sessionsRepo.DeleteByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	session := entity.Session{
		Token:     newToken(),
		UserID:    uid,
		ExpiresAt: time.Now().UTC().Add(sessionTTL),
		CreatedAt: time.Now().UTC(),
	}
	err = serv.sessionsRepo.Create(ctx, &session)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	return &session, nil
}

// Resolve checks expiry lazily, comparing UTC instants. A session whose owner
// no longer exists resolves to ErrSessionNotFound, not a user error.
func (serv *SessionService) Resolve(ctx context.Context, token string) (*entity.User, error) {
	session, err := serv.sessionsRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, errorvalues.ErrSessionNotFound) {
			return nil, errorvalues.ErrSessionNotFound
		}
		return nil, errors.New("repository error: " + err.Error())
	}
	if !time.Now().UTC().Before(session.ExpiresAt.UTC()) {
		return nil, errorvalues.ErrSessionExpired
	}
	user, err := serv.usersRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrSessionNotFound
		}
		return nil, errors.New("repository error: " + err.Error())
	}
	return user, nil
}

func (serv *SessionService) Revoke(ctx context.Context, token string) error {
	err := serv.sessionsRepo.DeleteByToken(ctx, token)
	if err != nil {
		return errors.New("repository error: " + err.Error())
	}
	return nil
}
