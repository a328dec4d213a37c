package historyrepo_test

import (
	"context"
	"testing"
	"time"

	"orders/internal/adapters/out/postgres/historyrepo"
	"orders/internal/adapters/out/postgres/pgtest"
	"orders/internal/core/domain/model/history"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/pagination"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var historyColumns = []string{"id", "order_id", "created_at", "kind", "payload"}

func TestGormHistoryRepository_Append(t *testing.T) {
	db, mock := pgtest.NewMockDB(t)
	repo := historyrepo.NewGormHistoryRepository(db)

	entry, err := history.NewItem(1, time.Now(), history.ItemAddedPayload{ProductID: 7, Quantity: 3})
	require.NoError(t, err)

	mock.ExpectQuery(`INSERT INTO "order_history" .* RETURNING "id"`).
		WithArgs(int64(1), sqlmock.AnyArg(), "item_added", []byte(`{"productId":7,"quantity":3}`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))

	stored, err := repo.Append(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, int64(100), stored.ID())
	assert.Equal(t, history.KindItemAdded, stored.Kind())
}

func TestGormHistoryRepository_Search(t *testing.T) {
	createdAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("decodes every payload kind", func(t *testing.T) {
		db, mock := pgtest.NewMockDB(t)
		repo := historyrepo.NewGormHistoryRepository(db)

		page, err := pagination.NewPage(1, 10)
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT \* FROM "order_history" WHERE order_id IN \(\$1\) ORDER BY id`).
			WillReturnRows(sqlmock.NewRows(historyColumns).
				AddRow(1, 1, createdAt, "created", []byte(`{"createdBy":"alice"}`)).
				AddRow(2, 1, createdAt, "item_added", []byte(`{"productId":7,"quantity":3}`)).
				AddRow(3, 1, createdAt, "item_removed", []byte(`{"productId":7}`)).
				AddRow(4, 1, createdAt, "state_changed", []byte(`{"fromState":"created","toState":"processing"}`)))

		got, err := repo.Search(context.Background(), ports.HistoryFilter{OrderIDs: []int64{1}}, page)
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, history.CreatedPayload{CreatedBy: "alice"}, got[0].Payload())
		assert.Equal(t, history.ItemAddedPayload{ProductID: 7, Quantity: 3}, got[1].Payload())
		assert.Equal(t, history.ItemRemovedPayload{ProductID: 7}, got[2].Payload())
		assert.Equal(t, history.StateChangedPayload{FromState: "created", ToState: "processing"}, got[3].Payload())
	})

	t.Run("filters by kind", func(t *testing.T) {
		db, mock := pgtest.NewMockDB(t)
		repo := historyrepo.NewGormHistoryRepository(db)

		page, err := pagination.NewPage(1, 10)
		require.NoError(t, err)
		kind := history.KindStateChanged

		mock.ExpectQuery(`SELECT \* FROM "order_history" WHERE kind = \$1 ORDER BY id`).
			WillReturnRows(sqlmock.NewRows(historyColumns))

		got, err := repo.Search(context.Background(), ports.HistoryFilter{Kind: &kind}, page)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("corrupt payload", func(t *testing.T) {
		db, mock := pgtest.NewMockDB(t)
		repo := historyrepo.NewGormHistoryRepository(db)

		page, err := pagination.NewPage(1, 10)
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT \* FROM "order_history"`).
			WillReturnRows(sqlmock.NewRows(historyColumns).AddRow(1, 1, createdAt, "created", []byte(`{`)))

		_, err = repo.Search(context.Background(), ports.HistoryFilter{}, page)
		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestGormHistoryRepository_FindEqual(t *testing.T) {
	occurredAt := time.Date(2024, 5, 1, 10, 0, 0, 123456789, time.UTC)
	note, err := history.NewItem(1, occurredAt, history.StateChangedPayload{
		FromState: "processing",
		ToState:   "packing_started",
	})
	require.NoError(t, err)
	query := `SELECT \* FROM "order_history" WHERE order_id = \$1 AND kind = \$2 AND created_at = \$3 ` +
		`AND payload = CAST\(\$4 AS jsonb\) ORDER BY id LIMIT`

	t.Run("stored note", func(t *testing.T) {
		db, mock := pgtest.NewMockDB(t)
		repo := historyrepo.NewGormHistoryRepository(db)

		mock.ExpectQuery(query).
			WillReturnRows(sqlmock.NewRows(historyColumns).
				AddRow(7, 1, occurredAt.Truncate(time.Microsecond), "state_changed",
					[]byte(`{"fromState":"processing","toState":"packing_started"}`)))

		stored, found, err := repo.FindEqual(context.Background(), note)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, int64(7), stored.ID())
		assert.Equal(t, note.Payload(), stored.Payload())
	})

	t.Run("no match", func(t *testing.T) {
		db, mock := pgtest.NewMockDB(t)
		repo := historyrepo.NewGormHistoryRepository(db)

		mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows(historyColumns))

		stored, found, err := repo.FindEqual(context.Background(), note)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, stored)
	})
}
