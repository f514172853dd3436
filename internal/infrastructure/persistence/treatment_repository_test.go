package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockTreatmentRepository creates a GormTreatmentRepository with a mocked SQL connection
func newMockTreatmentRepository(t *testing.T) (*GormTreatmentRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormTreatmentRepository(gormDB), mock, mockDB
}

func TestNewGormTreatmentRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockTreatmentRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormTreatmentRepository_FindByID(t *testing.T) {
	t.Run("finds existing treatment", func(t *testing.T) {
		repo, mock, mockDB := newMockTreatmentRepository(t)
		defer mockDB.Close()

		treatmentID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "type", "default_price", "active"}).
			AddRow(treatmentID, "Terapia laserowa", "laser", decimal.NewFromInt(200), true)

		mock.ExpectQuery(`SELECT \* FROM "available_treatments" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(treatmentID, 1).
			WillReturnRows(rows)

		treatment, err := repo.FindByID(context.Background(), treatmentID)

		assert.NoError(t, err)
		assert.NotNil(t, treatment)
		assert.Equal(t, treatmentID, treatment.ID)
		assert.Equal(t, "Terapia laserowa", treatment.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent treatment", func(t *testing.T) {
		repo, mock, mockDB := newMockTreatmentRepository(t)
		defer mockDB.Close()

		treatmentID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "available_treatments" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(treatmentID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		treatment, err := repo.FindByID(context.Background(), treatmentID)

		assert.Error(t, err)
		assert.Nil(t, treatment)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTreatmentRepository_FindActiveByName(t *testing.T) {
	t.Run("finds active treatment by name", func(t *testing.T) {
		repo, mock, mockDB := newMockTreatmentRepository(t)
		defer mockDB.Close()

		treatmentID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "type", "default_price", "active"}).
			AddRow(treatmentID, "Terapia PRP", "prp", decimal.NewFromInt(400), true)

		mock.ExpectQuery(`SELECT \* FROM "available_treatments" WHERE name = \$1 AND active = \$2 ORDER BY .* LIMIT .*`).
			WithArgs("Terapia PRP", true, 1).
			WillReturnRows(rows)

		treatment, err := repo.FindActiveByName(context.Background(), "Terapia PRP")

		assert.NoError(t, err)
		assert.NotNil(t, treatment)
		assert.True(t, treatment.DefaultPrice.Equal(decimal.NewFromInt(400)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for deactivated treatment", func(t *testing.T) {
		repo, mock, mockDB := newMockTreatmentRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "available_treatments" WHERE name = \$1 AND active = \$2 ORDER BY .* LIMIT .*`).
			WithArgs("Stara terapia", true, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		treatment, err := repo.FindActiveByName(context.Background(), "Stara terapia")

		assert.Error(t, err)
		assert.Nil(t, treatment)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTreatmentRepository_FindAllActive(t *testing.T) {
	t.Run("lists active treatments ordered by name", func(t *testing.T) {
		repo, mock, mockDB := newMockTreatmentRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "name", "type", "default_price", "active"}).
			AddRow(uuid.New(), "Masaż skóry głowy", "massage", decimal.NewFromInt(150), true).
			AddRow(uuid.New(), "Terapia LED", "led", decimal.NewFromInt(100), true)

		mock.ExpectQuery(`SELECT \* FROM "available_treatments" WHERE active = \$1 ORDER BY name ASC`).
			WithArgs(true).
			WillReturnRows(rows)

		treatments, err := repo.FindAllActive(context.Background())

		assert.NoError(t, err)
		assert.Len(t, treatments, 2)
		assert.Equal(t, "Masaż skóry głowy", treatments[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTreatmentRepository_ExistsByName(t *testing.T) {
	t.Run("returns true when name taken", func(t *testing.T) {
		repo, mock, mockDB := newMockTreatmentRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"count"}).AddRow(1)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "available_treatments" WHERE name = \$1`).
			WithArgs("Karboksyterapia").
			WillReturnRows(rows)

		exists, err := repo.ExistsByName(context.Background(), "Karboksyterapia")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false when name free", func(t *testing.T) {
		repo, mock, mockDB := newMockTreatmentRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"count"}).AddRow(0)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "available_treatments" WHERE name = \$1`).
			WithArgs("Nowa terapia").
			WillReturnRows(rows)

		exists, err := repo.ExistsByName(context.Background(), "Nowa terapia")

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTreatmentRepository_FindAll(t *testing.T) {
	t.Run("applies search and type filter", func(t *testing.T) {
		repo, mock, mockDB := newMockTreatmentRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "name", "type", "default_price", "active"}).
			AddRow(uuid.New(), "Terapia laserowa", "laser", decimal.NewFromInt(200), true)

		mock.ExpectQuery(`SELECT \* FROM "available_treatments" WHERE name ILIKE \$1 AND type = \$2 ORDER BY name ASC LIMIT .*`).
			WithArgs("%laser%", "laser", 20).
			WillReturnRows(rows)

		treatments, err := repo.FindAll(context.Background(), shared.Filter{
			Search:   "laser",
			Filters:  map[string]interface{}{"type": "laser"},
			Page:     1,
			PageSize: 20,
		})

		assert.NoError(t, err)
		assert.Len(t, treatments, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("orders by a known column", func(t *testing.T) {
		repo, mock, mockDB := newMockTreatmentRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "name", "type", "default_price", "active"}).
			AddRow(uuid.New(), "Terapia LED", "led", decimal.NewFromInt(100), true)

		mock.ExpectQuery(`SELECT \* FROM "available_treatments" ORDER BY default_price DESC`).
			WillReturnRows(rows)

		treatments, err := repo.FindAll(context.Background(), shared.Filter{
			OrderBy:  "default_price",
			OrderDir: "desc",
		})

		assert.NoError(t, err)
		assert.Len(t, treatments, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown order column falls back to name", func(t *testing.T) {
		repo, mock, mockDB := newMockTreatmentRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "name", "type", "default_price", "active"}).
			AddRow(uuid.New(), "Terapia LED", "led", decimal.NewFromInt(100), true)

		mock.ExpectQuery(`SELECT \* FROM "available_treatments" ORDER BY name ASC`).
			WillReturnRows(rows)

		treatments, err := repo.FindAll(context.Background(), shared.Filter{
			OrderBy: "name; DROP TABLE available_treatments",
		})

		assert.NoError(t, err)
		assert.Len(t, treatments, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
