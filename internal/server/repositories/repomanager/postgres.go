// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmorenoweb/portal/internal/dbx"
	"github.com/dmorenoweb/portal/internal/server/migrations"
	"github.com/dmorenoweb/portal/internal/server/repositories/categories"
	"github.com/dmorenoweb/portal/internal/server/repositories/forum"
	"github.com/dmorenoweb/portal/internal/server/repositories/gallery"
	"github.com/dmorenoweb/portal/internal/server/repositories/information"
	"github.com/dmorenoweb/portal/internal/server/repositories/news"
	"github.com/dmorenoweb/portal/internal/server/repositories/quizzes"
	"github.com/dmorenoweb/portal/internal/server/repositories/stats"
	"github.com/dmorenoweb/portal/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// News returns a news.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) News(db dbx.DBTX) news.Repository {
	return news.NewPostgresRepository(db)
}

// Forum returns a forum.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Forum(db dbx.DBTX) forum.Repository {
	return forum.NewPostgresRepository(db)
}

// Gallery returns a gallery.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Gallery(db dbx.DBTX) gallery.Repository {
	return gallery.NewPostgresRepository(db)
}

// Information returns an information.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Information(db dbx.DBTX) information.Repository {
	return information.NewPostgresRepository(db)
}

// Quizzes returns a quizzes.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Quizzes(db dbx.DBTX) quizzes.Repository {
	return quizzes.NewPostgresRepository(db)
}

// Categories returns a categories.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Categories(db dbx.DBTX) categories.Repository {
	return categories.NewPostgresRepository(db)
}

// Stats returns a stats.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Stats(db dbx.DBTX) stats.Repository {
	return stats.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("pgx")
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager(db *sql.DB) (RepositoryManager, error) {
	return &PostgresRepositoryManager{}, nil
}
