package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGormBankNameRepository_SearchByName(t *testing.T) {
	t.Run("matches partial names regardless of case", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormBankNameRepository(gormDB)

		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "name", "branch_code"}).
			AddRow(uuid.New(), now, now, "Capitec", "470010")

		mock.ExpectQuery(`SELECT \* FROM "bank_names" WHERE name ILIKE \$1 ORDER BY name ASC`).
			WithArgs("%capitec%").
			WillReturnRows(rows)

		banks, err := repo.SearchByName(context.Background(), "capitec")

		assert.NoError(t, err)
		assert.Len(t, banks, 1)
		assert.Equal(t, "Capitec", banks[0].Name)
		assert.Equal(t, "470010", banks[0].BranchCode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no matches yields an empty slice", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormBankNameRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "bank_names" WHERE name ILIKE \$1 ORDER BY name ASC`).
			WithArgs("%absa%").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at", "name", "branch_code"}))

		banks, err := repo.SearchByName(context.Background(), "absa")

		assert.NoError(t, err)
		assert.Empty(t, banks)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
