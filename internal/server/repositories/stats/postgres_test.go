package stats

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCollect_SingleQuery(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	cols := []string{"users", "news", "forum", "images", "quizzes", "info"}
	rows := sqlmock.NewRows(cols).AddRow(int64(10), int64(4), int64(7), int64(12), int64(2), int64(5))
	mock.ExpectQuery(`(?s)SELECT\s+\(SELECT\s+COUNT\(\*\)\s+FROM\s+users\),.*FROM\s+information_topics\)`).
		WillReturnRows(rows)

	got, err := repo.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect error: %v", err)
	}
	if got.UserCount != 10 || got.InformationTopicsCount != 5 {
		t.Fatalf("unexpected stats: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCollect_DBError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("db down"))

	_, err = repo.Collect(context.Background())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
