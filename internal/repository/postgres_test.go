package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"carprice/internal/entity"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestPostgresCredentialStore_Load(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT username, password FROM credentials").
		WillReturnRows(sqlmock.NewRows([]string{"username", "password"}).
			AddRow("admin", "1234").
			AddRow("ravi", "$2a$10$hash"))

	creds, err := NewPostgresCredentialStore(db).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.Credentials{"admin": "1234", "ravi": "$2a$10$hash"}, creds)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCredentialStore_LoadEmptyTableYieldsDefaults(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT username, password FROM credentials").
		WillReturnRows(sqlmock.NewRows([]string{"username", "password"}))

	creds, err := NewPostgresCredentialStore(db).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultCredentials(), creds)
}

func TestPostgresCredentialStore_LoadError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT username, password FROM credentials").
		WillReturnError(errors.New("connection refused"))

	_, err := NewPostgresCredentialStore(db).Load(context.Background())
	require.ErrorContains(t, err, "connection refused")
}

func TestPostgresCredentialStore_SaveUpsertsSorted(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO credentials")
	prep.ExpectExec().WithArgs("admin", "1234").WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs("user", "password").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := NewPostgresCredentialStore(db).Save(context.Background(), entity.DefaultCredentials())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCredentialStore_SaveRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO credentials")
	prep.ExpectExec().WithArgs("admin", "1234").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := NewPostgresCredentialStore(db).Save(context.Background(), entity.Credentials{"admin": "1234"})
	require.ErrorContains(t, err, "boom")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPredictionRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()
	p := entity.Prediction{
		ID:        "p1",
		Username:  "admin",
		Car:       entity.DefaultCarForm(),
		Features:  entity.DefaultCarForm().Features(),
		Price:     4.25,
		CreatedAt: now,
	}

	mock.ExpectExec("INSERT INTO predictions").
		WithArgs("p1", "admin", "CNG", "First", "Manual", 2015, 40000, 18.0, 1200, sqlmock.AnyArg(), 4.25, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewPostgresPredictionRepository(db).Save(context.Background(), p))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPredictionRepository_ListByUser(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()
	cols := []string{"id", "username", "fuel_type", "ownership", "transmission", "manufacture_year",
		"kilometers_driven", "mileage", "engine_capacity", "features", "price", "created_at"}

	mock.ExpectQuery("SELECT (.+) FROM predictions").
		WithArgs("admin", 5).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("p2", "admin", "Petrol", "Second", "Automatic", 2018, 25000, 20.0, 1500,
				"{3,25000,2,2,2018,20,1500}", 6.5, now))

	list, err := NewPostgresPredictionRepository(db).ListByUser(context.Background(), "admin", 5)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "p2", list[0].ID)
	assert.Equal(t, entity.FeatureVector{3, 25000, 2, 2, 2018, 20, 1500}, list[0].Features)
	assert.Equal(t, entity.FuelPetrol, list[0].Car.FuelType)
	assert.Equal(t, 6.5, list[0].Price)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryPredictionRepository(t *testing.T) {
	r := NewMemoryPredictionRepository()
	ctx := context.Background()

	for i, u := range []string{"admin", "user", "admin", "admin"} {
		require.NoError(t, r.Save(ctx, entity.Prediction{Username: u, Price: float64(i)}))
	}

	list, err := r.ListByUser(ctx, "admin", 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 3.0, list[0].Price)
	assert.Equal(t, 2.0, list[1].Price)

	list, err = r.ListByUser(ctx, "nobody", 5)
	require.NoError(t, err)
	assert.Empty(t, list)
}
