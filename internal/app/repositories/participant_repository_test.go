package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/merts/countdown-rsvp/internal/app/models"
	"github.com/merts/countdown-rsvp/internal/pkg/apperrors"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*ParticipantRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewParticipantRepository(mock), mock
}

func TestParticipantRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)

	participant := &models.Participant{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Contact:      "ada@x.com",
		Grade:        models.Grade11,
		ReferralCode: "ADALOV0042",
	}

	id := uuid.New()
	createdAt := time.Now()

	mock.ExpectQuery("INSERT INTO participants").
		WithArgs(
			participant.FirstName,
			participant.LastName,
			participant.Contact,
			participant.Grade,
			pgxmock.AnyArg(),
			pgxmock.AnyArg(),
			participant.ReferralCode,
			pgxmock.AnyArg(),
		).
		WillReturnRows(pgxmock.NewRows([]string{"id", "recruit_count", "created_at"}).
			AddRow(id, 0, createdAt))

	err := repo.Create(context.Background(), participant)
	require.NoError(t, err)
	assert.Equal(t, id, participant.ID)
	assert.Equal(t, 0, participant.RecruitCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepository_Create_ConstraintMapping(t *testing.T) {
	cases := []struct {
		name       string
		pgErr      *pgconn.PgError
		wantErr    error
	}{
		{
			"duplicate contact",
			&pgconn.PgError{Code: "23505", ConstraintName: "uq_participants_contact"},
			apperrors.ErrDuplicateContact,
		},
		{
			"duplicate referral code",
			&pgconn.PgError{Code: "23505", ConstraintName: "uq_participants_referral_code"},
			apperrors.ErrReferralCodeTaken,
		},
		{
			"self referral check",
			&pgconn.PgError{Code: "23514", ConstraintName: "chk_participants_no_self_referral"},
			apperrors.ErrSelfReferral,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)

			mock.ExpectQuery("INSERT INTO participants").
				WithArgs(
					pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
					pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				).
				WillReturnError(tc.pgErr)

			err := repo.Create(context.Background(), &models.Participant{})
			assert.ErrorIs(t, err, tc.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestParticipantRepository_GetByReferralCode(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	createdAt := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM participants").
		WithArgs("ADALOV0042").
		WillReturnRows(participantRows().AddRow(
			id, "Ada", "Lovelace", "ada@x.com", "11th",
			nil, nil, "ADALOV0042", nil, 3, createdAt,
		))

	participant, err := repo.GetByReferralCode(context.Background(), "ADALOV0042")
	require.NoError(t, err)
	assert.Equal(t, id, participant.ID)
	assert.Equal(t, "Ada", participant.FirstName)
	assert.Equal(t, models.Grade11, participant.Grade)
	assert.Empty(t, participant.ReferredByCode)
	assert.Equal(t, 3, participant.RecruitCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepository_GetByReferralCode_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM participants").
		WithArgs("NOSUCH9999").
		WillReturnError(pgx.ErrNoRows)

	participant, err := repo.GetByReferralCode(context.Background(), "NOSUCH9999")
	assert.Nil(t, participant)
	assert.ErrorIs(t, err, apperrors.ErrParticipantNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepository_ContactExists(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("ada@x.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ContactExists(context.Background(), "ada@x.com")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepository_ReferralCodeExists(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("ADALOV0042").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.ReferralCodeExists(context.Background(), "ADALOV0042")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepository_ListTopReferrers(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM participants ORDER BY recruit_count DESC").
		WithArgs(10).
		WillReturnRows(participantRows().
			AddRow(uuid.New(), "Ada", "Lovelace", "ada@x.com", "11th", nil, nil, "ADALOV0042", nil, 7, now).
			AddRow(uuid.New(), "Bob", "Byron", "b@x.com", "10th", nil, "vegan", "BOBBYR0001", "ADALOV0042", 2, now))

	participants, err := repo.ListTopReferrers(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, participants, 2)
	assert.Equal(t, "Ada", participants[0].FirstName)
	assert.Equal(t, 7, participants[0].RecruitCount)
	assert.Equal(t, "vegan", participants[1].DietaryRestrictions)
	assert.Equal(t, "ADALOV0042", participants[1].ReferredByCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepository_Count(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(42)))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepository_IncrementRecruitCount(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE participants SET recruit_count = recruit_count \\+ 1").
		WithArgs("ADALOV0042").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.IncrementRecruitCount(context.Background(), "ADALOV0042")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepository_IncrementRecruitCount_UnknownCode(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE participants SET recruit_count").
		WithArgs("NOSUCH9999").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.IncrementRecruitCount(context.Background(), "NOSUCH9999")
	assert.ErrorIs(t, err, apperrors.ErrParticipantNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func participantRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "first_name", "last_name", "contact", "grade", "referrer_name",
		"dietary_restrictions", "referral_code", "referred_by_code", "recruit_count", "created_at",
	})
}
