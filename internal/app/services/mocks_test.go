package services

import (
	"context"

	"github.com/merts/countdown-rsvp/internal/app/models"
	"github.com/stretchr/testify/mock"
)

// MockParticipantRepo is a testify mock of repositories.IParticipantRepository
type MockParticipantRepo struct {
	mock.Mock
}

func (m *MockParticipantRepo) Create(ctx context.Context, participant *models.Participant) error {
	args := m.Called(ctx, participant)
	return args.Error(0)
}

func (m *MockParticipantRepo) GetByReferralCode(ctx context.Context, code string) (*models.Participant, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Participant), args.Error(1)
}

func (m *MockParticipantRepo) ContactExists(ctx context.Context, contact string) (bool, error) {
	args := m.Called(ctx, contact)
	return args.Bool(0), args.Error(1)
}

func (m *MockParticipantRepo) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockParticipantRepo) ListTopReferrers(ctx context.Context, limit int) ([]*models.Participant, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Participant), args.Error(1)
}

func (m *MockParticipantRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockParticipantRepo) IncrementRecruitCount(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}
