package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"porcelain/internal/repos"
	"porcelain/internal/services"
)

type fixture struct {
	sessions *services.SessionStore
	catalog  *services.CatalogService
	cart     *services.CartService
	users    *repos.UserRepo
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sessions := services.NewSessionStore(time.Hour)
	catalog := services.NewCatalogService(repos.NewProductRepo(db))
	return fixture{
		sessions: sessions,
		catalog:  catalog,
		cart:     services.NewCartService(sessions, catalog),
		users:    repos.NewUserRepo(db),
	}
}
