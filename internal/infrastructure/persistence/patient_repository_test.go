package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockPatientRepository creates a GormPatientRepository with a mocked SQL connection
func newMockPatientRepository(t *testing.T) (*GormPatientRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormPatientRepository(gormDB), mock, mockDB
}

func patientRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "version",
		"first_name", "last_name", "phone", "email", "date_of_birth", "notes", "active",
	})
}

func TestGormPatientRepository_FindByID(t *testing.T) {
	t.Run("finds an existing patient", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		patientID := uuid.New()
		now := time.Now()

		rows := patientRows().
			AddRow(patientID, now, now, 1, "Anna", "Kowalska", "+48 600 100 200", "anna.kowalska@example.com", nil, "", true)

		mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(patientID, 1).
			WillReturnRows(rows)

		found, err := repo.FindByID(context.Background(), patientID)

		assert.NoError(t, err)
		assert.Equal(t, "Anna Kowalska", found.FullName())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps a missing row to ErrNotFound", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		patientID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(patientID, 1).
			WillReturnRows(patientRows())

		found, err := repo.FindByID(context.Background(), patientID)

		assert.Nil(t, found)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPatientRepository_FindAll(t *testing.T) {
	t.Run("pages and orders by name", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		now := time.Now()
		rows := patientRows().
			AddRow(uuid.New(), now, now, 1, "Anna", "Kowalska", "", "", nil, "", true).
			AddRow(uuid.New(), now, now, 1, "Piotr", "Nowak", "", "", nil, "", true)

		mock.ExpectQuery(`SELECT \* FROM "patients" ORDER BY last_name ASC, first_name ASC LIMIT .*`).
			WithArgs(20).
			WillReturnRows(rows)

		patients, err := repo.FindAll(context.Background(), shared.Filter{Page: 1, PageSize: 20})

		assert.NoError(t, err)
		assert.Len(t, patients, 2)
		assert.Equal(t, "Kowalska", patients[0].LastName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPatientRepository_Search(t *testing.T) {
	t.Run("matches active patients by name fragment", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		now := time.Now()
		rows := patientRows().
			AddRow(uuid.New(), now, now, 1, "Anna", "Kowalska", "", "", nil, "", true)

		mock.ExpectQuery(`SELECT \* FROM "patients" WHERE active = \$1 AND \(first_name ILIKE \$2 OR last_name ILIKE \$3\) ORDER BY last_name ASC, first_name ASC LIMIT .*`).
			WithArgs(true, "%kowal%", "%kowal%", 20).
			WillReturnRows(rows)

		patients, err := repo.Search(context.Background(), "kowal", shared.Filter{Page: 1, PageSize: 20})

		assert.NoError(t, err)
		assert.Len(t, patients, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPatientRepository_Exists(t *testing.T) {
	t.Run("reports a known patient", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		patientID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "patients" WHERE id = \$1`).
			WithArgs(patientID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.Exists(context.Background(), patientID)

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports an unknown patient", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		patientID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "patients" WHERE id = \$1`).
			WithArgs(patientID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.Exists(context.Background(), patientID)

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPatientRepository_Count(t *testing.T) {
	repo, mock, mockDB := newMockPatientRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "patients"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.Count(context.Background(), shared.Filter{})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
