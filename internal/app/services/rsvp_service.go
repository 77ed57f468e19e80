package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/merts/countdown-rsvp/internal/app/models"
	"github.com/merts/countdown-rsvp/internal/app/repositories"
	"github.com/merts/countdown-rsvp/internal/pkg/apperrors"
)

// CreateRSVPInput carries the submitted form fields into the intake flow
type CreateRSVPInput struct {
	FirstName           string
	LastName            string
	Contact             string
	Grade               string
	ReferrerName        string
	DietaryRestrictions string
	ReferredByCode      string
}

// RSVPService orchestrates RSVP intake: it validates the submission, checks
// for duplicate contacts, generates the referral code, validates the referral
// chain, persists the record and credits the referrer.
type RSVPService struct {
	participantRepo repositories.IParticipantRepository
	logger          zerolog.Logger
	codeAttempts    int
	codeSuffix      func() int // returns a value in [0, codeSuffixDigits)
}

// NewRSVPService creates a new RSVP service instance
func NewRSVPService(participantRepo repositories.IParticipantRepository, codeAttempts int, lgr zerolog.Logger) *RSVPService {
	if codeAttempts < 1 {
		codeAttempts = 1
	}
	return &RSVPService{
		participantRepo: participantRepo,
		logger:          lgr,
		codeAttempts:    codeAttempts,
		codeSuffix:      randomCodeSuffix,
	}
}

// NormalizeContact lower-cases and trims a contact identifier. The same
// normalization runs at duplicate-check time and at write time; applying it
// unevenly would silently break the uniqueness invariant.
func NormalizeContact(contact string) string {
	return strings.ToLower(strings.TrimSpace(contact))
}

// validateInput checks required fields after normalization
func validateInput(input *CreateRSVPInput) error {
	if input.FirstName == "" {
		return apperrors.NewValidationError("firstName", "First name is required")
	}
	if input.LastName == "" {
		return apperrors.NewValidationError("lastName", "Last name is required")
	}
	if input.Contact == "" {
		return apperrors.NewValidationError("contact", "Contact is required")
	}
	if input.Grade == "" {
		return apperrors.NewValidationError("grade", "Grade is required")
	}
	if !models.Grade(input.Grade).IsValid() {
		return apperrors.NewValidationError("grade", "Grade must be one of 9th, 10th, 11th, 12th")
	}
	return nil
}

// CreateRSVP runs the full intake flow and returns the created participant.
//
// Steps 1-5 (validate, duplicate guard, code generation, referral chain
// validation, insert) are fail-fast: the first failure aborts the intake with
// no partial write. Step 6, crediting the referrer, is best-effort: once the
// record is durably created its failure is logged and never escalated, so
// recruit counts may under-count relative to true referral links.
func (s *RSVPService) CreateRSVP(ctx context.Context, input CreateRSVPInput) (*models.Participant, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Contact = NormalizeContact(input.Contact)
	input.Grade = strings.TrimSpace(input.Grade)
	input.ReferrerName = strings.TrimSpace(input.ReferrerName)
	input.DietaryRestrictions = strings.TrimSpace(input.DietaryRestrictions)
	input.ReferredByCode = strings.ToUpper(strings.TrimSpace(input.ReferredByCode))

	if err := validateInput(&input); err != nil {
		return nil, err
	}

	// Duplicate guard. A failed lookup is surfaced, not treated as "no
	// duplicate": letting a genuine duplicate through because the check
	// itself errored would break the contact uniqueness invariant.
	exists, err := s.participantRepo.ContactExists(ctx, input.Contact)
	if err != nil {
		return nil, fmt.Errorf("error checking for existing contact: %w", err)
	}
	if exists {
		return nil, apperrors.ErrDuplicateContact
	}

	code, err := s.generateReferralCode(ctx, input.FirstName, input.LastName)
	if err != nil {
		return nil, err
	}

	referredBy, err := s.validateReferralChain(ctx, input.ReferredByCode, code)
	if err != nil {
		return nil, err
	}

	participant := &models.Participant{
		FirstName:           input.FirstName,
		LastName:            input.LastName,
		Contact:             input.Contact,
		Grade:               models.Grade(input.Grade),
		ReferrerName:        input.ReferrerName,
		DietaryRestrictions: input.DietaryRestrictions,
		ReferralCode:        code,
		ReferredByCode:      referredBy,
	}

	if err := s.participantRepo.Create(ctx, participant); err != nil {
		return nil, err
	}

	if referredBy != "" {
		s.creditReferrer(ctx, referredBy, participant.ReferralCode)
	}

	return participant, nil
}

// validateReferralChain resolves the supplied referred-by code against the
// new record's own code and the existing record set. Self-referral is a hard
// failure of the whole intake; an unknown code downgrades silently to "no
// referral" so a mistyped share link never blocks a signup.
func (s *RSVPService) validateReferralChain(ctx context.Context, referredByCode, newCode string) (string, error) {
	if referredByCode == "" {
		return "", nil
	}

	if referredByCode == newCode {
		return "", apperrors.ErrSelfReferral
	}

	_, err := s.participantRepo.GetByReferralCode(ctx, referredByCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrParticipantNotFound) {
			s.logger.Warn().Str("referredByCode", referredByCode).Msg("Unknown referral code on RSVP, dropping referral link")
			return "", nil
		}
		return "", fmt.Errorf("error resolving referral code: %w", err)
	}

	return referredByCode, nil
}

// creditReferrer increments the referrer's recruit count. Best-effort: the
// participant record is already durably created, so a failure here is logged
// and never surfaced to the submitter.
func (s *RSVPService) creditReferrer(ctx context.Context, referredBy, newCode string) {
	if err := s.participantRepo.IncrementRecruitCount(ctx, referredBy); err != nil {
		s.logger.Error().
			Err(err).
			Str("referredByCode", referredBy).
			Str("newCode", newCode).
			Msg("Failed to credit referrer recruit count")
	}
}

// GetByReferralCode returns the participant owning a referral code
func (s *RSVPService) GetByReferralCode(ctx context.Context, code string) (*models.Participant, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, apperrors.NewValidationError("code", "Referral code is required")
	}

	return s.participantRepo.GetByReferralCode(ctx, code)
}
