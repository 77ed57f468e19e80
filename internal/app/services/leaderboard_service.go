package services

import (
	"context"
	"fmt"

	"github.com/merts/countdown-rsvp/internal/app/models"
	"github.com/merts/countdown-rsvp/internal/app/repositories"
)

// LeaderboardService handles the read-only leaderboard and participant count
// queries polled by the landing page. It has no side effects and is safe to
// call repeatedly and concurrently.
type LeaderboardService struct {
	participantRepo repositories.IParticipantRepository
	defaultLimit    int
	maxLimit        int
}

// NewLeaderboardService creates a new leaderboard service instance
func NewLeaderboardService(participantRepo repositories.IParticipantRepository, defaultLimit, maxLimit int) *LeaderboardService {
	if defaultLimit < 1 {
		defaultLimit = 10
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	return &LeaderboardService{
		participantRepo: participantRepo,
		defaultLimit:    defaultLimit,
		maxLimit:        maxLimit,
	}
}

// ListTopReferrers returns up to limit participants ordered by recruit count
// descending, earliest signup first among ties. A non-positive limit falls
// back to the configured default; the configured maximum caps it.
func (s *LeaderboardService) ListTopReferrers(ctx context.Context, limit int) ([]*models.Participant, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	participants, err := s.participantRepo.ListTopReferrers(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving leaderboard: %w", err)
	}

	return participants, nil
}

// CountParticipants returns the total number of RSVPs
func (s *LeaderboardService) CountParticipants(ctx context.Context) (int64, error) {
	count, err := s.participantRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("error counting participants: %w", err)
	}

	return count, nil
}
