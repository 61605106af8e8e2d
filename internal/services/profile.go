package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/finance-planner/internal/logger"
	"github.com/sbilibin2017/finance-planner/internal/models"
)

//go:generate mockgen -source=profile.go -destination=profile_mock.go -package=services

// ProfileReader defines read-only operations for profiles.
type ProfileReader interface {
	GetByName(ctx context.Context, name string) (*models.ProfileDB, error)
}

// ProfileWriter defines write operations for profiles.
type ProfileWriter interface {
	SaveIfAbsent(ctx context.Context, profileID, name string) error
}

// ProfileService resolves profiles by name.
type ProfileService struct {
	reader ProfileReader
	writer ProfileWriter
}

// NewProfileService creates a new ProfileService instance.
func NewProfileService(reader ProfileReader, writer ProfileWriter) *ProfileService {
	return &ProfileService{
		reader: reader,
		writer: writer,
	}
}

// GetByName returns an existing profile or ErrProfileNotFound.
func (svc *ProfileService) GetByName(ctx context.Context, name string) (*models.ProfileDB, error) {
	if err := validateProfileName(name); err != nil {
		return nil, err
	}

	profile, err := svc.reader.GetByName(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		logger.Log.Errorw("failed to load profile", "name", name, "err", err)
		return nil, err
	}
	return profile, nil
}

// LoadOrCreate returns the profile with the given name, creating it first if needed.
func (svc *ProfileService) LoadOrCreate(ctx context.Context, name string) (*models.ProfileDB, error) {
	profile, err := svc.GetByName(ctx, name)
	if err == nil || !errors.Is(err, ErrProfileNotFound) {
		return profile, err
	}

	// A concurrent request may create the same name; the insert is a no-op then
	// and the re-read returns the winner.
	if err := svc.writer.SaveIfAbsent(ctx, "pro:"+uuid.NewString(), name); err != nil {
		logger.Log.Errorw("failed to create profile", "name", name, "err", err)
		return nil, err
	}

	profile, err = svc.reader.GetByName(ctx, name)
	if err != nil {
		logger.Log.Errorw("failed to load created profile", "name", name, "err", err)
		return nil, err
	}

	logger.Log.Infow("profile created", "name", name, "profile_id", profile.ProfileID)
	return profile, nil
}

func validateProfileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidProfileName
	}
	return nil
}
