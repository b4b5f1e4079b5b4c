package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const insertQ = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*email,\s*password_hash,\s*subscription\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+created_at\s*$`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"created_at"}).AddRow(now)
	mock.ExpectQuery(insertQ).
		WithArgs("u-1", "test@gmail.com", "$2a$10$hash", "starter").
		WillReturnRows(rows)

	u := &models.User{ID: "u-1", Email: "test@gmail.com", PasswordHash: "$2a$10$hash", Subscription: "starter"}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "u-1" || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WithArgs("u-2", "test@gmail.com", "$2a$10$hash", "starter").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), &models.User{ID: "u-2", Email: "test@gmail.com", PasswordHash: "$2a$10$hash", Subscription: "starter"})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WithArgs("u-3", "x@y.z", "h", "starter").
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{ID: "u-3", Email: "x@y.z", PasswordHash: "h", Subscription: "starter"})
	if err == nil || errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

const selectByEmailQ = `(?s)^SELECT\s+id,\s*email,\s*password_hash,\s*subscription,\s*token,\s*created_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "subscription", "token", "created_at"}).
		AddRow("u-1", "test@gmail.com", "$2a$10$hash", "starter", nil, time.Now())
	mock.ExpectQuery(selectByEmailQ).
		WithArgs("test@gmail.com").
		WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), "test@gmail.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != "u-1" || got.Token.Valid {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByEmailQ).
		WithArgs("ghost@gmail.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@gmail.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

const setTokenQ = `(?s)^UPDATE\s+users\s+SET\s+token\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$1\s*$`

func TestSetToken_SetAndClear(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	token := "jwt-token"
	mock.ExpectExec(setTokenQ).
		WithArgs("u-1", token).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetToken(context.Background(), "u-1", &token); err != nil {
		t.Fatalf("SetToken error: %v", err)
	}

	mock.ExpectExec(setTokenQ).
		WithArgs("u-1", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetToken(context.Background(), "u-1", nil); err != nil {
		t.Fatalf("SetToken(nil) error: %v", err)
	}
}

func TestSetToken_UserMissing(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(setTokenQ).
		WithArgs("ghost", nil).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetToken(context.Background(), "ghost", nil)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestSetSubscription(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+users\s+SET\s+subscription\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$1\s*$`

	mock.ExpectExec(q).
		WithArgs("u-1", "pro").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetSubscription(context.Background(), "u-1", "pro"); err != nil {
		t.Fatalf("SetSubscription error: %v", err)
	}
}
