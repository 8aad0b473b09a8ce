package core

import (
	"context"
	"errors"
	"fmt"

	"goshopper-backend-go/internal/db"
	"goshopper-backend-go/internal/models"
)

// ErrUserNotFound is returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// DefaultCity is assigned to new user profiles until they pick one.
const DefaultCity = "Kinshasa"

// userService implements the UserService interface.
type userService struct {
	userRepo db.UserRepository
	subSvc   SubscriptionService
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo db.UserRepository, subSvc SubscriptionService) UserService {
	return &userService{
		userRepo: userRepo,
		subSvc:   subSvc,
	}
}

// GetOrCreate retrieves a user by ID, creating the profile on first sign-in.
// Creation also provisions the trial subscription so a fresh account can scan
// immediately. Returns the user and whether it was created.
func (s *userService) GetOrCreate(ctx context.Context, userID, email, displayName, photoURL string) (*models.User, bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to get user %s: %w", userID, err)
	}

	newUser := &models.User{
		ID:                userID,
		Email:             email,
		DisplayName:       displayName,
		PhotoURL:          photoURL,
		City:              DefaultCity,
		PreferredCurrency: "USD",
	}
	if createErr := s.userRepo.Create(ctx, newUser); createErr != nil {
		return nil, false, fmt.Errorf("failed to create user %s: %w", userID, createErr)
	}

	if _, subErr := s.subSvc.GetOrCreate(ctx, userID); subErr != nil {
		// The profile exists; the subscription will be provisioned lazily on
		// the next subscription read.
		return newUser, true, fmt.Errorf("user created but trial provisioning failed: %w", subErr)
	}

	return newUser, true, nil
}

// GetByID retrieves a user by their ID.
func (s *userService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	return user, nil
}
