package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/taskcart/taskcart/orders"
)

func TestOrderRepo_CreateAndGet(t *testing.T) {
	now := time.Now()
	items := []orders.Item{
		{ProductID: "01JPROD000000000000000000A", Quantity: 2, UnitPriceCents: 499},
	}
	itemsJSON, err := json.Marshal(items)
	require.NoError(t, err)

	t.Run("create marshals items to jsonb", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO orders`).
			WithArgs(pgxmock.AnyArg(), "01JACCT0000000000000000000", itemsJSON, int64(998), orders.StatusPaid, "ch_001", pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		repo := NewOrderRepo(mock)
		err = repo.Create(context.Background(), &orders.Order{
			AccountID:  "01JACCT0000000000000000000",
			Items:      items,
			TotalCents: 998,
			Status:     orders.StatusPaid,
			ChargeID:   "ch_001",
			CreatedAt:  now,
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get unmarshals items", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"id", "account_id", "items", "total_cents", "status", "charge_id", "created_at"}).
			AddRow("01JORDER00000000000000000A", "01JACCT0000000000000000000", itemsJSON, int64(998), orders.StatusPaid, "ch_001", now)
		mock.ExpectQuery(`SELECT id, account_id, items`).
			WithArgs("01JORDER00000000000000000A").
			WillReturnRows(rows)

		repo := NewOrderRepo(mock)
		order, err := repo.Get(context.Background(), "01JORDER00000000000000000A")
		require.NoError(t, err)
		require.Equal(t, int64(998), order.TotalCents)
		require.Len(t, order.Items, 1)
		require.Equal(t, 2, order.Items[0].Quantity)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
