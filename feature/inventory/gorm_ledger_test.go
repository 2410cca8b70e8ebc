package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestGormLedger_LookupCardsError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `cards` WHERE card_code IN").
		WillReturnError(errors.New("connection reset"))

	_, err := NewGormLedger(db, stagingTable, 0).LookupCards(context.Background(), []string{"hBP01-001"})

	var le *LedgerError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "lookup cards", le.Op)
	assert.Zero(t, le.Status)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormLedger_LookupCards(t *testing.T) {
	db, mock := setupMockDB(t)
	rows := sqlmock.NewRows([]string{"id", "card_code", "expansion"}).
		AddRow(1, "hBP01-001", "hBP01")
	mock.ExpectQuery("SELECT \\* FROM `cards` WHERE card_code IN").
		WithArgs("hBP01-001", "hBP01-404").
		WillReturnRows(rows)

	got, err := NewGormLedger(db, stagingTable, 0).LookupCards(context.Background(), []string{"hBP01-001", "hBP01-404"})

	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"hBP01-001": 1}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormLedger_EmptyLookupsSkipQueries(t *testing.T) {
	db, mock := setupMockDB(t)
	l := NewGormLedger(db, stagingTable, 0)

	cards, err := l.LookupCards(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, cards)

	prints, err := l.LookupPrints(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, prints)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormLedger_ReplaceRollsBackOnInsertFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `inventory_lots_staging` WHERE id IS NOT NULL").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO `inventory_lots_staging`").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	_, err := NewGormLedger(db, stagingTable, 0).ReplaceStaging(context.Background(), []StagedLot{
		{CardCode: "hBP01-001", CardID: 1, Currency: "J"},
	})

	var le *LedgerError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "insert staging", le.Op)
	assert.NoError(t, mock.ExpectationsWereMet())
}
