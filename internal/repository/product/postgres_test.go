package product

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgres_Load(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"id", "name", "price", "stock", "description"}).
		AddRow(101, "Camisetas", "10.00", 5, "Algodon").
		AddRow(102, "Pantalones", "25.50", 10, "No description")
	mock.ExpectQuery("SELECT id, name, price").WillReturnRows(rows)

	repo := NewPostgres(mock, zerolog.Nop())
	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 101, got[0].ID)
	assert.Equal(t, "10", got[0].Price.String())
	assert.Equal(t, 10, got[1].Stock)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_LoadEmptyTable(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, name, price").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "price", "stock", "description"}))

	got, err := NewPostgres(mock, zerolog.Nop()).Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPostgres_SaveReplacesRowsInOneTransaction(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	products := sampleProducts()
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM products").WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec("INSERT INTO products").
		WithArgs(101, "Camisetas", "10", 5, "Algodon", 0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO products").
		WithArgs(102, "Pantalones", "25.5", 10, "No description", 1).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, NewPostgres(mock, zerolog.Nop()).Save(context.Background(), products))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SaveRollsBackOnInsertError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	boom := errors.New("unique violation")
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM products").WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("INSERT INTO products").WillReturnError(boom)
	mock.ExpectRollback()

	err = NewPostgres(mock, zerolog.Nop()).Save(context.Background(), sampleProducts())
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}
