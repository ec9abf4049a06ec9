package database_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/adapters/database"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/repositories"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/infrastructure/clients/postgres"
	apperrors "github.com/Aryaman129/play-nest-nagpur-sub001/pkg/errors"
)

func setupSlotAdapter(t *testing.T) (repositories.SlotRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return database.NewSlotAdapter(postgres.NewClientWithDB(db)), mock
}

func TestSlotAdapter_MarkAvailability_TakeGuardsOnAvailability(t *testing.T) {
	adapter, mock := setupSlotAdapter(t)

	// taking the slot must only update a row that is still available
	mock.ExpectExec(`UPDATE "time_slots" SET .+ WHERE \(\("id" = .+\) AND \("is_available" IS TRUE\)\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.MarkAvailability(context.Background(), "slot-1", false)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotAdapter_MarkAvailability_LostRaceIsConflict(t *testing.T) {
	adapter, mock := setupSlotAdapter(t)

	// the row exists but was already taken, so the guarded update touches nothing
	mock.ExpectExec(`UPDATE "time_slots"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := adapter.MarkAvailability(context.Background(), "slot-1", false)

	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeConflict, appErr.Type)
}

func TestSlotAdapter_MarkAvailability_ReleaseIsUnguarded(t *testing.T) {
	adapter, mock := setupSlotAdapter(t)

	mock.ExpectExec(`UPDATE "time_slots" SET .+ WHERE \("id" = .+\)$`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.MarkAvailability(context.Background(), "slot-1", true)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotAdapter_MarkAvailability_ReleaseMissingSlotIsNotFound(t *testing.T) {
	adapter, mock := setupSlotAdapter(t)

	mock.ExpectExec(`UPDATE "time_slots"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := adapter.MarkAvailability(context.Background(), "slot-1", true)

	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}
