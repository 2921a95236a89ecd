package gormstore

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"campus-chat/entity"
	"campus-chat/repository"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	cfg := Config()
	cfg.SkipDefaultTransaction = true
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), cfg)
	require.NoError(t, err)
	return NewStore(db), mock
}

func TestSaveSettingsInsertsWhenRowIsMissing(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE "t_settings" SET .+ WHERE "id" = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "t_settings"`) + `.+` + regexp.QuoteMeta(`ON CONFLICT ("id") DO UPDATE SET "updated_at"=`) + `\$\d+,` + regexp.QuoteMeta(`"rules"="excluded"."rules"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	settings := &entity.Settings{Rules: "be nice", FilterWords: []string{"pis"}, GroupMessageExpiry: 24}
	require.NoError(t, store.SaveSettings(context.Background(), settings))
	assert.Equal(t, entity.SettingsID, settings.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveSettingsUpdatesExistingRow(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE "t_settings" SET .+ WHERE "id" = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.SaveSettings(context.Background(), &entity.Settings{ID: entity.SettingsID, Rules: "be nice"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSettingsNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "t_settings" WHERE id = $1`)).
		WithArgs(entity.SettingsID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.GetSettings(context.Background())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountReportsByUser(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT reported_user_id, count(*) AS total FROM "t_report" GROUP BY "reported_user_id"`)).
		WillReturnRows(sqlmock.NewRows([]string{"reported_user_id", "total"}).
			AddRow("u1", 3).
			AddRow("u2", 1))

	counts, err := store.CountReportsByUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"u1": 3, "u2": 1}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleDeletionUpsertsByMessage(t *testing.T) {
	store, mock := newMockStore(t)
	fireAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "t_scheduled_deletion" ("message_id","room","fire_at") VALUES ($1,$2,$3) ON CONFLICT ("message_id") DO UPDATE SET "room"="excluded"."room","fire_at"="excluded"."fire_at"`)).
		WithArgs("m1", "faculty:Tarix", fireAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.ScheduleDeletion(context.Background(), &entity.ScheduledDeletion{MessageID: "m1", Room: "faculty:Tarix", FireAt: fireAt})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelDeletionIgnoresMissingRow(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "t_scheduled_deletion" WHERE message_id = $1`)).
		WithArgs("m1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.CancelDeletion(context.Background(), "m1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
