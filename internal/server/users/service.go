// Package users implements the identity side of the symptom checker:
// registration, password sign-in, and API key resolution backed by the
// credential store.
package users

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/medassist/symptomchecker/internal/common"
	"github.com/medassist/symptomchecker/internal/shared"
)

// MinPasswordLength is the documented floor for raw password length.
const MinPasswordLength = 6

// apiKeyBytes is the amount of randomness behind every issued API key.
const apiKeyBytes = 32

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a new user with a bcrypt password hash and a freshly
// issued API key. A duplicate email yields common.ErrorAlreadyExists, a too
// short password common.ErrorValidation.
func (s *Service) Register(ctx context.Context, email, password string) (*User, error) {

	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %v", err)
	}

	apiKey, err := shared.MakeRandURLSafeString(apiKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("error generating api key: %v", err)
	}

	user := &User{
		Email:        email,
		PasswordHash: string(hash),
		APIKey:       apiKey,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %v", err)
	}

	return user, nil
}

// Authenticate verifies email+password and returns the stored identity.
// Unknown email and wrong password both map to common.ErrorInvalidCredentials
// so the response does not reveal which part was wrong.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidCredentials
		}
		return nil, fmt.Errorf("%w: error finding user by email: %v", common.ErrorInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrorInvalidCredentials
	}

	return user, nil
}

// ResolveAPIKey looks up the identity owning the given API key. An unknown
// key yields common.ErrorNotFound; the caller is expected to map that to an
// authentication failure, not an internal error.
func (s *Service) ResolveAPIKey(ctx context.Context, apiKey string) (*User, error) {

	user, err := s.repo.GetByAPIKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: error finding user by api key: %v", common.ErrorInternal, err)
	}

	return user, nil
}
