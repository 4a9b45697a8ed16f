package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmorenoweb/portal/internal/dbx"
	"github.com/dmorenoweb/portal/internal/server/repositories/categories"
	"github.com/dmorenoweb/portal/internal/server/repositories/forum"
	"github.com/dmorenoweb/portal/internal/server/repositories/gallery"
	"github.com/dmorenoweb/portal/internal/server/repositories/information"
	"github.com/dmorenoweb/portal/internal/server/repositories/news"
	"github.com/dmorenoweb/portal/internal/server/repositories/quizzes"
	"github.com/dmorenoweb/portal/internal/server/repositories/stats"
	"github.com/dmorenoweb/portal/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	News(db dbx.DBTX) news.Repository
	Forum(db dbx.DBTX) forum.Repository
	Gallery(db dbx.DBTX) gallery.Repository
	Information(db dbx.DBTX) information.Repository
	Quizzes(db dbx.DBTX) quizzes.Repository
	Categories(db dbx.DBTX) categories.Repository
	Stats(db dbx.DBTX) stats.Repository
}
