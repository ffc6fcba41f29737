package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/safi/checktick/internal/error_values"
	"github.com/safi/checktick/internal/repository"
	"github.com/safi/checktick/pkg/entity"
	"github.com/safi/checktick/pkg/passhash"
)

type UserService struct {
	repo repository.UsersRepositoryI
}

func NewUserService(usersRepo repository.UsersRepositoryI) *UserService {
	return &UserService{
		repo: usersRepo,
	}
}

func (us *UserService) Register(ctx context.Context, req *RegisterRequest) (*entity.User, error) {
	err := validate.Struct(*req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errors.New("validation error: ")
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return nil, err
		}
		return nil, errors.New("validation unexpected error: " + err.Error())
	}
	passwordHash, err := passhash.Hash(req.Password)
	if err != nil {
		return nil, errors.New("hashing password error: " + err.Error())
	}
	user := entity.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: passwordHash,
	}
	err = us.repo.Create(ctx, &user)
	if err != nil {
		if errors.Is(err, errorvalues.ErrEmailTaken) {
			return nil, errorvalues.ErrEmailTaken
		}
		return nil, errors.New("repository creating error: " + err.Error())
	}
	return &user, nil
}

// Login reports ErrWrongCredentials for both an unknown email and a wrong
// password, never revealing which factor failed.
func (us *UserService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := us.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrWrongCredentials
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	ok, err := passhash.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, errors.New("verifying password error: " + err.Error())
	}
	if !ok {
		return nil, errorvalues.ErrWrongCredentials
	}
	return user, nil
}

func (us *UserService) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := us.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) ChangePassword(ctx context.Context, id uuid.UUID, current, updated string) error {
	user, err := us.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return errorvalues.ErrUserNotFound
		}
		return errors.New("repository searching error: " + err.Error())
	}
	ok, err := passhash.Verify(current, user.PasswordHash)
	if err != nil {
		return errors.New("verifying password error: " + err.Error())
	}
	if !ok {
		return errorvalues.ErrWrongCredentials
	}
	passwordHash, err := passhash.Hash(updated)
	if err != nil {
		return errors.New("hashing password error: " + err.Error())
	}
	err = us.repo.UpdatePassword(ctx, id, passwordHash)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return errorvalues.ErrUserNotFound
		}
		return errors.New("repository updating error: " + err.Error())
	}
	return nil
}
