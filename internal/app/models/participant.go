package models

import (
	"time"

	"github.com/google/uuid"
)

// Participant defines the participant model based on the 'participants' table.
// One row is created per accepted RSVP; recruit_count is the only column that
// is ever mutated after creation.
type Participant struct {
	ID                  uuid.UUID `json:"id" db:"id"`
	FirstName           string    `json:"firstName" db:"first_name" example:"Ada"`
	LastName            string    `json:"lastName" db:"last_name" example:"Lovelace"`
	Contact             string    `json:"contact" db:"contact" example:"ada@x.com"` // phone or email, stored normalized
	Grade               Grade     `json:"grade" db:"grade" example:"11th"`
	ReferrerName        string    `json:"referrerName,omitempty" db:"referrer_name"`         // free text, who invited them
	DietaryRestrictions string    `json:"dietaryRestrictions,omitempty" db:"dietary_restrictions"`
	ReferralCode        string    `json:"referralCode" db:"referral_code" example:"ADALOV4821"`
	ReferredByCode      string    `json:"referredByCode,omitempty" db:"referred_by_code"`
	RecruitCount        int       `json:"recruitCount" db:"recruit_count"`
	CreatedAt           time.Time `json:"createdAt" db:"created_at"`
}
