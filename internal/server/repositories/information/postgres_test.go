package information

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmorenoweb/portal/internal/common"
	"github.com/dmorenoweb/portal/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func topicColumns() []string {
	return []string{
		"id", "title", "slug", "description", "content", "image_url",
		"parent_id", "author_id", "category_id", "created_at", "updated_at",
		"parent_title", "author_name", "category_name",
	}
}

func TestList_SearchUsesPattern(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+COUNT\(\*\)\s+FROM\s+information_topics\s+i\s+WHERE\s+\(i\.title\s+ILIKE\s+\$1`).
		WithArgs("%herb%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	rows := sqlmock.NewRows(topicColumns()).
		AddRow(int64(1), "Herbs", "herbs", nil, "c", nil, nil, int64(1), nil, time.Now(), nil, nil, "Alice", nil)
	mock.ExpectQuery(`WHERE\s+\(i\.title\s+ILIKE\s+\$1\s+OR\s+i\.content\s+ILIKE\s+\$1\).*ORDER\s+BY\s+i\.title\s+ASC\s+LIMIT\s+\$2\s+OFFSET\s+\$3`).
		WithArgs("%herb%", 10, 0).
		WillReturnRows(rows)

	items, total, err := repo.List(context.Background(), ListFilter{Search: "herb", Limit: 10})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Slug != "herbs" {
		t.Fatalf("unexpected result: total=%d items=%+v", total, items)
	}
}

func TestGetBySlug_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(topicColumns()).
		AddRow(int64(2), "Child", "child", nil, "c", nil, int64(1), int64(1), nil, time.Now(), nil, "Parent", "Alice", nil)
	mock.ExpectQuery(`WHERE\s+i\.slug\s*=\s*\$1`).
		WithArgs("child").
		WillReturnRows(rows)

	got, err := repo.GetBySlug(context.Background(), "child")
	if err != nil {
		t.Fatalf("GetBySlug error: %v", err)
	}
	if got.ParentTitle == nil || *got.ParentTitle != "Parent" {
		t.Fatalf("unexpected topic: %+v", got)
	}
}

func TestGetBySlug_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`WHERE\s+i\.slug\s*=\s*\$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetBySlug(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestSlugExists(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+EXISTS\(SELECT\s+1\s+FROM\s+information_topics\s+WHERE\s+slug\s*=\s*\$1\s+AND\s+id\s*<>\s*\$2\)`).
		WithArgs("herbs", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	got, err := repo.SlugExists(context.Background(), "herbs", 0)
	if err != nil {
		t.Fatalf("SlugExists error: %v", err)
	}
	if !got {
		t.Fatal("expected slug to exist")
	}
}

func TestSlugExists_ExcludesOwnRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+EXISTS\(SELECT\s+1\s+FROM\s+information_topics\s+WHERE\s+slug\s*=\s*\$1\s+AND\s+id\s*<>\s*\$2\)`).
		WithArgs("herbs", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	got, err := repo.SlugExists(context.Background(), "herbs", 7)
	if err != nil {
		t.Fatalf("SlugExists error: %v", err)
	}
	if got {
		t.Fatal("a topic keeping its own slug must not collide with itself")
	}
}

func TestUpdate_RewritesSlug(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+information_topics\s+SET\s+title\s*=\s*\$1,\s*slug\s*=\s*\$2,`).
		WithArgs("Herbs", "plants", nil, "c", nil, nil, nil, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &models.InformationTopic{
		ID: 7, Title: "Herbs", Slug: "plants", Content: "c",
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
}
