package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/merts/countdown-rsvp/internal/app/models"
	"github.com/merts/countdown-rsvp/internal/pkg/apperrors"
	"github.com/merts/countdown-rsvp/internal/pkg/dberrors"
	"github.com/merts/countdown-rsvp/internal/pkg/helpers"
)

// Constraint names from migrations/001_init.sql
const (
	constraintUniqueContact      = "uq_participants_contact"
	constraintUniqueReferralCode = "uq_participants_referral_code"
	constraintNoSelfReferral     = "chk_participants_no_self_referral"
)

// DB is the subset of pgxpool.Pool the repository needs. Declared as an
// interface so tests can substitute a mock pool.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// IParticipantRepository defines the interface for participant-related database operations
type IParticipantRepository interface {
	Create(ctx context.Context, participant *models.Participant) error
	GetByReferralCode(ctx context.Context, code string) (*models.Participant, error)
	ContactExists(ctx context.Context, contact string) (bool, error)
	ReferralCodeExists(ctx context.Context, code string) (bool, error)
	ListTopReferrers(ctx context.Context, limit int) ([]*models.Participant, error)
	Count(ctx context.Context) (int64, error)
	IncrementRecruitCount(ctx context.Context, code string) error
}

// ParticipantRepository handles database operations for participants
type ParticipantRepository struct {
	db DB
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(db DB) *ParticipantRepository {
	return &ParticipantRepository{
		db: db,
	}
}

// Create inserts a new participant record. The insert is the atomicity
// boundary for record creation: on failure no partial record exists. Unique
// violations are translated to the matching application error so a race that
// slipped past the pre-checks still surfaces correctly.
func (r *ParticipantRepository) Create(ctx context.Context, participant *models.Participant) error {
	query := `
		INSERT INTO participants
			(first_name, last_name, contact, grade, referrer_name, dietary_restrictions, referral_code, referred_by_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, recruit_count, created_at
	`

	err := r.db.QueryRow(ctx, query,
		participant.FirstName,
		participant.LastName,
		participant.Contact,
		participant.Grade,
		helpers.GetContentNullString(participant.ReferrerName),
		helpers.GetContentNullString(participant.DietaryRestrictions),
		participant.ReferralCode,
		helpers.GetContentNullString(participant.ReferredByCode),
	).Scan(&participant.ID, &participant.RecruitCount, &participant.CreatedAt)

	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, constraintUniqueContact):
			return apperrors.ErrDuplicateContact
		case dberrors.IsDuplicateConstraintError(err, constraintUniqueReferralCode):
			return apperrors.ErrReferralCodeTaken
		case dberrors.IsCheckConstraintError(err, constraintNoSelfReferral):
			return apperrors.ErrSelfReferral
		}
		return fmt.Errorf("error creating participant: %w", err)
	}

	return nil
}

// GetByReferralCode retrieves a participant by their public referral code
func (r *ParticipantRepository) GetByReferralCode(ctx context.Context, code string) (*models.Participant, error) {
	query := `
		SELECT id, first_name, last_name, contact, grade, referrer_name, dietary_restrictions,
		       referral_code, referred_by_code, recruit_count, created_at
		FROM participants
		WHERE referral_code = $1
	`

	participant, err := r.scanParticipant(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("error retrieving participant by referral code: %w", err)
	}

	return participant, nil
}

// ContactExists checks whether a participant with the given (already
// normalized) contact exists. A "no rows" outcome is success, not an error.
func (r *ParticipantRepository) ContactExists(ctx context.Context, contact string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM participants WHERE contact = $1)`,
		contact).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking contact existence: %w", err)
	}

	return exists, nil
}

// ReferralCodeExists checks whether a referral code is already assigned
func (r *ParticipantRepository) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM participants WHERE referral_code = $1)`,
		code).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking referral code existence: %w", err)
	}

	return exists, nil
}

// ListTopReferrers retrieves up to limit participants ordered by recruit
// count descending, ties broken by earliest signup.
func (r *ParticipantRepository) ListTopReferrers(ctx context.Context, limit int) ([]*models.Participant, error) {
	query := `
		SELECT id, first_name, last_name, contact, grade, referrer_name, dietary_restrictions,
		       referral_code, referred_by_code, recruit_count, created_at
		FROM participants
		ORDER BY recruit_count DESC, created_at ASC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving leaderboard: %w", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		participant, err := r.scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, participant)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return participants, nil
}

// Count returns the total number of participant records
func (r *ParticipantRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM participants`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting participants: %w", err)
	}

	return count, nil
}

// IncrementRecruitCount atomically increments the recruit count of the
// participant owning the given referral code. The increment happens in SQL,
// never as a read-modify-write, so concurrent referrals of the same
// participant cannot lose updates.
func (r *ParticipantRepository) IncrementRecruitCount(ctx context.Context, code string) error {
	query := `UPDATE participants SET recruit_count = recruit_count + 1 WHERE referral_code = $1`

	cmdTag, err := r.db.Exec(ctx, query, code)
	if err != nil {
		return fmt.Errorf("error incrementing recruit count: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrParticipantNotFound
	}

	return nil
}

// scanParticipant scans a participant row, mapping nullable columns to empty strings
func (r *ParticipantRepository) scanParticipant(row pgx.Row) (*models.Participant, error) {
	var participant models.Participant
	var referrerName, dietary, referredBy sql.NullString

	err := row.Scan(
		&participant.ID,
		&participant.FirstName,
		&participant.LastName,
		&participant.Contact,
		&participant.Grade,
		&referrerName,
		&dietary,
		&participant.ReferralCode,
		&referredBy,
		&participant.RecruitCount,
		&participant.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	participant.ReferrerName = helpers.StringFromNull(referrerName)
	participant.DietaryRestrictions = helpers.StringFromNull(dietary)
	participant.ReferredByCode = helpers.StringFromNull(referredBy)

	return &participant, nil
}
