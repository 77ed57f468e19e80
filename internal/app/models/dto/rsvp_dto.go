package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/merts/countdown-rsvp/internal/app/models"
)

// CreateRSVPRequest represents an RSVP form submission
type CreateRSVPRequest struct {
	FirstName           string `json:"firstName" binding:"required" example:"Ada"`
	LastName            string `json:"lastName" binding:"required" example:"Lovelace"`
	Contact             string `json:"contact" binding:"required" example:"ada@x.com"`
	Grade               string `json:"grade" binding:"required,oneof=9th 10th 11th 12th" example:"11th"`
	ReferrerName        string `json:"referrerName,omitempty" example:"Charles B."`
	DietaryRestrictions string `json:"dietaryRestrictions,omitempty" example:"vegetarian"`
	ReferredByCode      string `json:"referredByCode,omitempty" example:"CHARLE0042"`
}

// ParticipantResponse represents a created RSVP, returned to the submitter
type ParticipantResponse struct {
	ID             uuid.UUID `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Contact        string    `json:"contact"`
	Grade          string    `json:"grade"`
	ReferralCode   string    `json:"referralCode"`
	ReferredByCode string    `json:"referredByCode,omitempty"`
	RecruitCount   int       `json:"recruitCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ReferrerResponse represents the public view of a participant behind a
// referral code, shown on the landing page as "invited by ...". The contact
// identifier is never exposed on this surface.
type ReferrerResponse struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	ReferralCode string `json:"referralCode"`
	RecruitCount int    `json:"recruitCount"`
}

// LeaderboardEntryResponse represents one leaderboard row
type LeaderboardEntryResponse struct {
	Rank         int       `json:"rank"`
	FirstName    string    `json:"firstName"`
	LastInitial  string    `json:"lastInitial"`
	RecruitCount int       `json:"recruitCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ParticipantCountResponse represents the total RSVP count
type ParticipantCountResponse struct {
	Count int64 `json:"count"`
}

// NewParticipantResponse maps a participant model to its owner-facing response
func NewParticipantResponse(p *models.Participant) ParticipantResponse {
	return ParticipantResponse{
		ID:             p.ID,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Contact:        p.Contact,
		Grade:          string(p.Grade),
		ReferralCode:   p.ReferralCode,
		ReferredByCode: p.ReferredByCode,
		RecruitCount:   p.RecruitCount,
		CreatedAt:      p.CreatedAt,
	}
}

// NewReferrerResponse maps a participant model to its public referrer view
func NewReferrerResponse(p *models.Participant) ReferrerResponse {
	return ReferrerResponse{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		ReferralCode: p.ReferralCode,
		RecruitCount: p.RecruitCount,
	}
}

// NewLeaderboardResponse maps ranked participants to leaderboard rows,
// shortening last names to an initial for the public surface
func NewLeaderboardResponse(participants []*models.Participant) []LeaderboardEntryResponse {
	entries := make([]LeaderboardEntryResponse, 0, len(participants))
	for i, p := range participants {
		lastInitial := ""
		if p.LastName != "" {
			lastInitial = string([]rune(p.LastName)[0]) + "."
		}
		entries = append(entries, LeaderboardEntryResponse{
			Rank:         i + 1,
			FirstName:    p.FirstName,
			LastInitial:  lastInitial,
			RecruitCount: p.RecruitCount,
			CreatedAt:    p.CreatedAt,
		})
	}
	return entries
}
