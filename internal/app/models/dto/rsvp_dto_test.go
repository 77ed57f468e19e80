package dto

import (
	"testing"

	"github.com/merts/countdown-rsvp/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLeaderboardResponse(t *testing.T) {
	participants := []*models.Participant{
		{FirstName: "Ada", LastName: "Lovelace", RecruitCount: 7},
		{FirstName: "Bob", LastName: "Östberg", RecruitCount: 3},
		{FirstName: "Cleo", LastName: "", RecruitCount: 1},
	}

	entries := NewLeaderboardResponse(participants)
	require.Len(t, entries, 3)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "Ada", entries[0].FirstName)
	assert.Equal(t, "L.", entries[0].LastInitial)
	assert.Equal(t, 7, entries[0].RecruitCount)

	// Multi-byte initials survive the shortening
	assert.Equal(t, "Ö.", entries[1].LastInitial)
	assert.Equal(t, "", entries[2].LastInitial)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestNewLeaderboardResponse_Empty(t *testing.T) {
	entries := NewLeaderboardResponse(nil)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestNewReferrerResponse_OmitsContact(t *testing.T) {
	p := &models.Participant{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Contact:      "ada@x.com",
		ReferralCode: "ADALOV0042",
		RecruitCount: 7,
	}

	resp := NewReferrerResponse(p)
	assert.Equal(t, "Ada", resp.FirstName)
	assert.Equal(t, "ADALOV0042", resp.ReferralCode)
}
