package services

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCodeStem(t *testing.T) {
	cases := []struct {
		name      string
		firstName string
		lastName  string
		want      string
	}{
		{"truncates to six letters", "Ada", "Lovelace", "ADALOV"},
		{"pads short names", "Al", "Bo", "ALBOXX"},
		{"strips non-letters", "An-Na", "O'Neil 3", "ANNAON"},
		{"empty name is all filler", "", "", "XXXXXX"},
		{"single long first name", "Maximilian", "", "MAXIMI"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, buildCodeStem(tc.firstName, tc.lastName))
		})
	}
}

func TestGenerateReferralCode_RetriesOnCollision(t *testing.T) {
	repo := new(MockParticipantRepo)
	svc := NewRSVPService(repo, 10, zerolog.Nop())
	ctx := context.Background()

	suffixes := []int{7, 7, 123}
	svc.codeSuffix = func() int {
		next := suffixes[0]
		suffixes = suffixes[1:]
		return next
	}

	repo.On("ReferralCodeExists", ctx, "ADALOV0007").Return(true, nil).Twice()
	repo.On("ReferralCodeExists", ctx, "ADALOV0123").Return(false, nil).Once()

	code, err := svc.generateReferralCode(ctx, "Ada", "Lovelace")
	require.NoError(t, err)
	assert.Equal(t, "ADALOV0123", code)
	repo.AssertExpectations(t)
}

func TestGenerateReferralCode_FallbackAfterExhaustion(t *testing.T) {
	repo := new(MockParticipantRepo)
	svc := NewRSVPService(repo, 3, zerolog.Nop())
	ctx := context.Background()

	svc.codeSuffix = func() int { return 42 }
	repo.On("ReferralCodeExists", ctx, "ADALOV0042").Return(true, nil).Times(3)

	code, err := svc.generateReferralCode(ctx, "Ada", "Lovelace")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(code, "ADALOV"))
	assert.Len(t, code, 10)
	// The fallback is not re-checked against storage
	repo.AssertNumberOfCalls(t, "ReferralCodeExists", 3)
}

func TestGenerateReferralCode_CollisionCheckFailureAborts(t *testing.T) {
	repo := new(MockParticipantRepo)
	svc := NewRSVPService(repo, 10, zerolog.Nop())
	ctx := context.Background()

	svc.codeSuffix = func() int { return 42 }
	repo.On("ReferralCodeExists", ctx, "ADALOV0042").Return(false, assert.AnError)

	code, err := svc.generateReferralCode(ctx, "Ada", "Lovelace")
	assert.Empty(t, code)
	assert.Error(t, err)
	repo.AssertNumberOfCalls(t, "ReferralCodeExists", 1)
}

func TestRandomCodeSuffix_Range(t *testing.T) {
	for i := 0; i < 1000; i++ {
		suffix := randomCodeSuffix()
		require.GreaterOrEqual(t, suffix, 0)
		require.Less(t, suffix, codeSuffixDigits)
	}
}
