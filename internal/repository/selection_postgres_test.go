package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/internal/repository/testutil"
)

func TestSelectionRepository_Create(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewSelectionRepository(db)
	selection := &domain.ShowroomSelection{
		SessionID:       uuid.New().String(),
		ProposalID:      uuid.New().String(),
		ActionType:      domain.ActionSigned,
		DiscountApplied: true,
		FinalPrice:      2040,
		ClientEmail:     "marie@atelier.fr",
	}

	mock.ExpectExec(`INSERT INTO showroom_selections`).
		WithArgs(sqlmock.AnyArg(), selection.SessionID, selection.ProposalID, string(selection.ActionType),
			true, selection.FinalPrice, selection.ClientEmail, "", "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), selection)
	require.NoError(t, err)
	assert.NotEmpty(t, selection.ID)
}

func TestSelectionRepository_Create_Duplicate(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewSelectionRepository(db)

	mock.ExpectExec(`INSERT INTO showroom_selections`).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &domain.ShowroomSelection{
		SessionID:   uuid.New().String(),
		ProposalID:  uuid.New().String(),
		ActionType:  domain.ActionQuoteRequest,
		ClientEmail: "marie@atelier.fr",
	})
	assert.ErrorIs(t, err, domain.ErrSelectionExists)
}

func TestSelectionRepository_GetBySessionID(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewSelectionRepository(db)
	sessionID := uuid.New().String()
	now := time.Now().UTC()

	columns := []string{"id", "session_id", "selected_proposal_id", "action_type", "discount_applied", "final_price", "client_email", "client_phone", "message", "created_at"}

	mock.ExpectQuery(`SELECT (.+) FROM showroom_selections WHERE session_id`).
		WithArgs(sessionID).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(uuid.New().String(), sessionID, uuid.New().String(), "signed", true, 2040.0, "marie@atelier.fr", nil, nil, now))

	selection, err := repo.GetBySessionID(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionSigned, selection.ActionType)
	assert.True(t, selection.DiscountApplied)
	assert.Equal(t, 2040.0, selection.FinalPrice)
	assert.Empty(t, selection.ClientPhone)

	mock.ExpectQuery(`SELECT (.+) FROM showroom_selections WHERE session_id`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err = repo.GetBySessionID(context.Background(), "missing")
	assert.True(t, domain.IsNotFound(err))
}

func TestSelectionRepository_CountByAction(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewSelectionRepository(db)

	mock.ExpectQuery(`SELECT action_type, COUNT\(\*\) FROM showroom_selections`).
		WillReturnRows(sqlmock.NewRows([]string{"action_type", "count"}).
			AddRow("quote_request", 3).
			AddRow("signed", 2))

	counts, err := repo.CountByAction(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, counts[domain.ActionQuoteRequest])
	assert.Equal(t, 2, counts[domain.ActionSigned])
}
