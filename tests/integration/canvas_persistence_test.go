package integration

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oreltrt123/displan-sub003/internal/elements"
	"github.com/oreltrt123/displan-sub003/internal/pages"
	"github.com/oreltrt123/displan-sub003/internal/projects"
	"github.com/oreltrt123/displan-sub003/internal/publish"
	"github.com/oreltrt123/displan-sub003/internal/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestPostgres creates a test PostgreSQL connection pool.
// Skips the test if TEST_DB_DSN is not set. The schema from
// db/schema.sql is assumed to be applied.
func setupTestPostgres(t *testing.T) *pgxpool.Pool {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping PostgreSQL integration test")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)

	require.NoError(t, pool.Ping(context.Background()))
	return pool
}

func setupTestUser(t *testing.T, pool *pgxpool.Pool) string {
	userRepo := users.NewRepo(pool)
	id, err := userRepo.EnsureUser(context.Background(), users.UpsertUser{
		AuthUID: "it-" + uuid.New().String(),
		Email:   fmt.Sprintf("it-%s@example.com", uuid.New().String()[:8]),
	})
	require.NoError(t, err)
	return id
}

func TestCanvasPersistence(t *testing.T) {
	pool := setupTestPostgres(t)
	defer pool.Close()

	ctx := context.Background()
	userID := setupTestUser(t, pool)

	projectRepo := projects.NewRepo(pool)
	pageRepo := pages.NewRepo(pool)
	elementRepo := elements.NewRepo(pool)

	project, err := projectRepo.Create(ctx, userID, "Integration Test Site")
	require.NoError(t, err)
	require.NotEmpty(t, project.ID)
	assert.True(t, projects.ValidSubdomain(project.Subdomain))

	page, err := pageRepo.Create(ctx, userID, project.ID, "Home", false)
	require.NoError(t, err)

	t.Run("element positions round on write", func(t *testing.T) {
		el, err := elementRepo.Create(ctx, userID, project.ID, page.ID, elements.CreateElement{
			ElementType: "heading",
			X:           100.6,
			Y:           49.4,
		})
		require.NoError(t, err)
		assert.Equal(t, 101, el.X)
		assert.Equal(t, 49, el.Y)

		fetched, err := elementRepo.FetchByPage(ctx, userID, project.ID, page.ID)
		require.NoError(t, err)
		require.Len(t, fetched, 1)
		assert.Equal(t, 101, fetched[0].X)
	})

	t.Run("new elements stack on top", func(t *testing.T) {
		first, err := elementRepo.Create(ctx, userID, project.ID, page.ID, elements.CreateElement{ElementType: "text"})
		require.NoError(t, err)
		second, err := elementRepo.Create(ctx, userID, project.ID, page.ID, elements.CreateElement{ElementType: "text"})
		require.NoError(t, err)
		assert.Greater(t, second.ZIndex, first.ZIndex)

		fetched, err := elementRepo.FetchByPage(ctx, userID, project.ID, page.ID)
		require.NoError(t, err)
		assert.Equal(t, second.ID, fetched[0].ID, "highest z-index is returned first")
	})

	t.Run("delete is scoped to the page", func(t *testing.T) {
		otherPage, err := pageRepo.Create(ctx, userID, project.ID, "About", false)
		require.NoError(t, err)

		el, err := elementRepo.Create(ctx, userID, project.ID, page.ID, elements.CreateElement{ElementType: "text"})
		require.NoError(t, err)

		// Deleting through the wrong page must not touch the row.
		ok, err := elementRepo.Delete(ctx, userID, project.ID, otherPage.ID, el.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = elementRepo.Delete(ctx, userID, project.ID, page.ID, el.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("another user cannot see the project", func(t *testing.T) {
		otherUser := setupTestUser(t, pool)
		_, err := projectRepo.Get(ctx, otherUser, project.ID)
		assert.True(t, projects.IsNotFound(err))
	})
}

func TestPublishPersistence(t *testing.T) {
	pool := setupTestPostgres(t)
	defer pool.Close()

	ctx := context.Background()
	userID := setupTestUser(t, pool)

	projectRepo := projects.NewRepo(pool)
	publishRepo := publish.NewRepo(pool)

	project, err := projectRepo.Create(ctx, userID, "Publish Test "+uuid.New().String()[:8])
	require.NoError(t, err)

	t.Run("republish overwrites instead of duplicating", func(t *testing.T) {
		require.NoError(t, publishRepo.UpsertWebsite(ctx, project.ID, project.Subdomain, "<html>v1</html>"))
		require.NoError(t, publishRepo.UpsertWebsite(ctx, project.ID, project.Subdomain, "<html>v2</html>"))

		site, err := publishRepo.GetWebsiteBySubdomain(ctx, project.Subdomain)
		require.NoError(t, err)
		assert.Equal(t, "<html>v2</html>", site.HTML)
	})

	t.Run("unknown subdomain is not found", func(t *testing.T) {
		_, err := publishRepo.GetWebsiteBySubdomain(ctx, "no-such-site-"+uuid.New().String()[:8])
		assert.ErrorIs(t, err, publish.ErrNotFound)
	})

	t.Run("site-name path round-trips", func(t *testing.T) {
		name := "it-site-" + uuid.New().String()[:8]
		require.NoError(t, publishRepo.UpsertSite(ctx, name, "<html>structured</html>"))

		html, err := publishRepo.GetSiteByName(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, "<html>structured</html>", html)
	})
}
