package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/RangiraDave/Test-copilot/internal/apperror"
	"github.com/RangiraDave/Test-copilot/internal/domain/entity"
	"github.com/RangiraDave/Test-copilot/internal/domain/repository"
	"github.com/RangiraDave/Test-copilot/internal/infrastructure/postgres"
)

// PreferenceService implements the like/dislike toggle. A stored pair means
// "liked"; like sets it and dislike clears it, so a like/dislike round trip
// always returns to the starting state.
type PreferenceService struct {
	Prefs        repository.PreferenceRepository
	Universities repository.UniversityRepository
	Logger       *logrus.Logger
}

// Like records the preference. liked is false when the pair already existed;
// the duplicate is a no-op either way.
func (s *PreferenceService) Like(ctx context.Context, userID, universityID string) (liked bool, err error) {
	if _, err := s.Universities.GetByID(ctx, universityID); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return false, apperror.NewNotFound("university not found", nil)
		}
		return false, apperror.NewDatabase("failed to look up university", err)
	}
	liked, err = s.Prefs.Add(ctx, userID, universityID)
	if err != nil {
		return false, apperror.NewDatabase("failed to record preference", err)
	}
	return liked, nil
}

// Dislike removes the preference if present. removed reports whether a row
// was actually deleted.
func (s *PreferenceService) Dislike(ctx context.Context, userID, universityID string) (removed bool, err error) {
	if _, err := s.Universities.GetByID(ctx, universityID); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return false, apperror.NewNotFound("university not found", nil)
		}
		return false, apperror.NewDatabase("failed to look up university", err)
	}
	removed, err = s.Prefs.Remove(ctx, userID, universityID)
	if err != nil {
		return false, apperror.NewDatabase("failed to remove preference", err)
	}
	return removed, nil
}

// Liked returns the universities the user currently likes, most recent first.
func (s *PreferenceService) Liked(ctx context.Context, userID string) ([]*entity.University, error) {
	prefs, err := s.Prefs.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.NewDatabase("failed to list preferences", err)
	}
	out := make([]*entity.University, 0, len(prefs))
	for _, p := range prefs {
		u, err := s.Universities.GetByID(ctx, p.UniversityID)
		if err != nil {
			if errors.Is(err, postgres.ErrNotFound) {
				continue
			}
			return nil, apperror.NewDatabase("failed to load university", err)
		}
		out = append(out, u)
	}
	return out, nil
}
