package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"regexp"
	"testing"

	"hotel/infras/otel"
	"hotel/infras/otel/mocks"
	"hotel/infras/postgres"
	"hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chalet struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	MaxGuests int    `db:"max_guests"`
}

var chaletColumns = []string{"id", "name", "max_guests"}

const chaletSelect = "SELECT chalets.id, chalets.name, chalets.max_guests FROM chalets"

func newSQL(t *testing.T) (repository.Repository[chalet], sqlmock.Sqlmock) {
	t.Helper()

	return newTracedSQL(t, mocks.NewOtel())
}

func newTracedSQL(t *testing.T, otl otel.Otel) (repository.Repository[chalet], sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	conn := sqlx.NewDb(db, "postgres")

	return repository.NewRepository[chalet]("chalet", "chalets", "id", &postgres.Connection{Read: conn, Write: conn}, otl), mock
}

func byID(id string) dto.FilterGroup {
	group := dto.FilterGroup{}
	group.Add(dto.Filter{Field: "id", Operator: dto.FilterOperatorEq, Value: id, Table: "chalets"})

	return group
}

func TestRepository_Insert(t *testing.T) {
	repo, mock := newSQL(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO chalets (id, name, max_guests) VALUES ($1, $2, $3)")).
		WithArgs("C1", "Wadi View", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Insert(context.Background(), chalet{ID: "C1", Name: "Wadi View", MaxGuests: 2}))
	require.NoError(t, repo.InsertBulk(context.Background(), nil))
}

func TestRepository_InsertConflict(t *testing.T) {
	repo, mock := newSQL(t)

	mock.ExpectExec("INSERT INTO chalets").WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := repo.Insert(context.Background(), chalet{ID: "C1"})
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}

func TestRepository_Get(t *testing.T) {
	repo, mock := newSQL(t)

	mock.ExpectPrepare(regexp.QuoteMeta(chaletSelect) + `\s+WHERE \(chalets\.id = \$1\) LIMIT 1`).
		ExpectQuery().
		WithArgs("C1").
		WillReturnRows(sqlmock.NewRows(chaletColumns).AddRow("C1", "Wadi View", 2))

	mock.ExpectPrepare(regexp.QuoteMeta(chaletSelect)).
		ExpectQuery().
		WithArgs("C9").
		WillReturnError(sql.ErrNoRows)

	found, err := repo.Get(context.Background(), byID("C1"))
	require.NoError(t, err)
	assert.Equal(t, chalet{ID: "C1", Name: "Wadi View", MaxGuests: 2}, found)

	missing, err := repo.Get(context.Background(), byID("C9"))
	require.NoError(t, err)
	assert.Empty(t, missing.ID)
}

func TestRepository_GetAll(t *testing.T) {
	t.Run("sorted and paged", func(t *testing.T) {
		repo, mock := newSQL(t)

		mock.ExpectPrepare(regexp.QuoteMeta(chaletSelect) + `\s+ORDER BY chalets\.name DESC, chalets\.id LIMIT \$1 OFFSET \$2`).
			ExpectQuery().
			WithArgs(5, 5).
			WillReturnRows(sqlmock.NewRows(chaletColumns).AddRow("C6", "Dune Camp", 4))

		chalets, err := repo.GetAll(context.Background(), dto.QueryParams{Page: 2, Limit: 5, SortBy: "name", SortDir: "desc"}, dto.FilterGroup{})
		require.NoError(t, err)
		assert.Len(t, chalets, 1)
	})

	t.Run("unknown sort key is dropped", func(t *testing.T) {
		repo, mock := newSQL(t)

		mock.ExpectPrepare("^" + regexp.QuoteMeta(chaletSelect) + `\s*$`).
			ExpectQuery().
			WillReturnRows(sqlmock.NewRows(chaletColumns))

		chalets, err := repo.GetAll(context.Background(), dto.QueryParams{SortBy: "name; DROP TABLE chalets"}, dto.FilterGroup{})
		require.NoError(t, err)
		assert.Empty(t, chalets)
	})
}

func TestRepository_CountAndExist(t *testing.T) {
	repo, mock := newSQL(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT COUNT(chalets.id) FROM chalets")).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM chalets WHERE (chalets.id = $1))")).
		ExpectQuery().
		WithArgs("C1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	count, err := repo.Count(context.Background(), dto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	exist, err := repo.Exist(context.Background(), byID("C1"))
	require.NoError(t, err)
	assert.True(t, exist)

	_, err = repo.Exist(context.Background(), dto.FilterGroup{})
	assert.Error(t, err)
}

func TestRepository_UpdateAndDelete(t *testing.T) {
	repo, mock := newSQL(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE chalets SET max_guests = $1, name = $2 WHERE (chalets.id = $3)")).
		WithArgs(3, "Sea Breeze", "C1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM chalets WHERE (chalets.id = $1)")).
		WithArgs("C1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), map[string]any{"name": "Sea Breeze", "max_guests": 3}, byID("C1")))
	require.NoError(t, repo.Delete(context.Background(), byID("C1")))

	assert.Error(t, repo.Update(context.Background(), map[string]any{"name": "x"}, dto.FilterGroup{}))
	assert.Error(t, repo.Delete(context.Background(), dto.FilterGroup{}))
}

func TestRepository_TracesFailures(t *testing.T) {
	recorder := mocks.NewRecorder()
	repo, mock := newTracedSQL(t, recorder)

	mock.ExpectExec("INSERT INTO chalets").WillReturnError(errors.New("duplicate key value"))

	err := repo.Insert(context.Background(), chalet{ID: "C1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert data (chalet)")

	assert.Equal(t, []string{"repository.sql.chalet.Insert"}, recorder.Spans())
	assert.Len(t, recorder.Errors(), 1)
}
