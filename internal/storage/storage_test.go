package storage

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/carson-networks/expense-server/internal/storage/sqlconfig"
)

// StorageTestSuite runs the expenses table against a real Postgres container.
type StorageTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	store     *Storage
}

func TestStorageTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Postgres integration tests in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	suite.Run(t, new(StorageTestSuite))
}

func (s *StorageTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("expenses"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("testpassword"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	store, err := Open(ctx, connStr, 10*time.Second)
	s.Require().NoError(err)
	s.store = store

	pre, post, err := Migrate(store.DB)
	s.Require().NoError(err)
	s.Equal(uint(0), pre)
	s.Equal(uint(1), post)
}

func (s *StorageTestSuite) TearDownSuite() {
	if s.store != nil {
		_ = s.store.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *StorageTestSuite) SetupTest() {
	_, err := s.store.DB.Exec("TRUNCATE expenses")
	s.Require().NoError(err)
}

func (s *StorageTestSuite) insert(notes string) *sqlconfig.Expense {
	row, err := s.store.Expenses.Insert(context.Background(), &sqlconfig.ExpenseCreate{
		Date:     "2025-06-01",
		Category: "food",
		Amount:   decimal.RequireFromString("12.35"),
		Notes:    notes,
	})
	s.Require().NoError(err)
	return row
}

func (s *StorageTestSuite) TestMigrateIsIdempotent() {
	pre, post, err := Migrate(s.store.DB)

	s.NoError(err)
	s.Equal(uint(1), pre)
	s.Equal(uint(1), post)
}

func (s *StorageTestSuite) TestPing() {
	s.NoError(s.store.Ping(context.Background()))
}

func (s *StorageTestSuite) TestInsertAndFind() {
	created := s.insert("lunch")

	s.NotEqual(uuid.Nil, created.ID)
	s.True(created.CreatedAt.Equal(created.UpdatedAt))

	found, err := s.store.Expenses.FindByID(context.Background(), created.ID)
	s.Require().NoError(err)
	s.Equal(created.ID, found.ID)
	s.Equal("2025-06-01", found.Date)
	s.Equal("food", found.Category)
	s.True(found.Amount.Equal(decimal.RequireFromString("12.35")))
	s.Equal("lunch", found.Notes)
}

func (s *StorageTestSuite) TestFindMissing() {
	_, err := s.store.Expenses.FindByID(context.Background(), uuid.Must(uuid.NewV7()))

	s.ErrorIs(err, sqlconfig.ErrExpenseNotFound)
}

func (s *StorageTestSuite) TestListNewestFirst() {
	first := s.insert("first")
	second := s.insert("second")
	third := s.insert("third")

	rows, err := s.store.Expenses.List(context.Background())

	s.Require().NoError(err)
	s.Require().Len(rows, 3)
	s.Equal([]uuid.UUID{third.ID, second.ID, first.ID}, []uuid.UUID{rows[0].ID, rows[1].ID, rows[2].ID})
}

func (s *StorageTestSuite) TestListEmpty() {
	rows, err := s.store.Expenses.List(context.Background())

	s.NoError(err)
	s.Empty(rows)
}

func (s *StorageTestSuite) TestUpdateTouchedColumnsOnly() {
	created := s.insert("lunch")

	updated, err := s.store.Expenses.Update(context.Background(), created.ID, &sqlconfig.ExpenseUpdate{
		Notes: omit.From("dinner"),
	})

	s.Require().NoError(err)
	s.Equal("dinner", updated.Notes)
	s.Equal(created.Date, updated.Date)
	s.Equal(created.Category, updated.Category)
	s.True(created.Amount.Equal(updated.Amount))
	s.True(created.CreatedAt.Equal(updated.CreatedAt))
	s.True(updated.UpdatedAt.After(created.UpdatedAt))
}

func (s *StorageTestSuite) TestUpdateAllColumns() {
	created := s.insert("lunch")

	updated, err := s.store.Expenses.Update(context.Background(), created.ID, &sqlconfig.ExpenseUpdate{
		Date:     omit.From("2024-12-31"),
		Category: omit.From("income"),
		Amount:   omit.From(decimal.RequireFromString("1000.5")),
		Notes:    omit.From(""),
	})

	s.Require().NoError(err)
	s.Equal("2024-12-31", updated.Date)
	s.Equal("income", updated.Category)
	s.True(updated.Amount.Equal(decimal.RequireFromString("1000.50")))
	s.Equal("", updated.Notes)
}

func (s *StorageTestSuite) TestUpdateMissing() {
	_, err := s.store.Expenses.Update(context.Background(), uuid.Must(uuid.NewV7()), &sqlconfig.ExpenseUpdate{
		Notes: omit.From("x"),
	})

	s.ErrorIs(err, sqlconfig.ErrExpenseNotFound)
}

func (s *StorageTestSuite) TestCheckConstraintsRejectInvalidRows() {
	_, err := s.store.Expenses.Insert(context.Background(), &sqlconfig.ExpenseCreate{
		Date:     "2025-06-01",
		Category: "vacation",
		Amount:   decimal.RequireFromString("1"),
	})

	s.Error(err)
	s.NotErrorIs(err, sqlconfig.ErrExpenseNotFound)
}

func (s *StorageTestSuite) TestDeleteThenDeleteAgain() {
	created := s.insert("lunch")

	s.NoError(s.store.Expenses.Delete(context.Background(), created.ID))
	s.ErrorIs(s.store.Expenses.Delete(context.Background(), created.ID), sqlconfig.ErrExpenseNotFound)

	_, err := s.store.Expenses.FindByID(context.Background(), created.ID)
	s.ErrorIs(err, sqlconfig.ErrExpenseNotFound)
}

func TestOpen_Unreachable(t *testing.T) {
	_, err := Open(context.Background(), "postgres://postgres:x@127.0.0.1:1/none?sslmode=disable", time.Second)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage: ping")
}
