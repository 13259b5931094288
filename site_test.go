package cheesyblog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypergopher/cheesyblog"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := cheesyblog.LoadConfig("testdata/config.toml")
	require.NoError(t, err)
	assert.Equal(t, cheesyblog.Config{
		Backend:  cheesyblog.BackendBBolt,
		DataDir:  "data",
		SeedDir:  "testdata/seed",
		MenuFile: "testdata/menu.json",
		LogLevel: "debug",
	}, cfg)

	cfg, err = cheesyblog.LoadConfig("testdata/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, cheesyblog.BackendSQLite, cfg.Backend)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.SeedDir)

	_, err = cheesyblog.LoadConfig("testdata/config.ini")
	assert.Error(t, err)

	_, err = cheesyblog.LoadConfig("testdata/missing.toml")
	assert.Error(t, err)
}

func TestConfig_Logger(t *testing.T) {
	_, err := cheesyblog.Config{LogLevel: "warn"}.Logger()
	assert.NoError(t, err)

	_, err = cheesyblog.Config{LogLevel: "chatty"}.Logger()
	assert.Error(t, err)
}

func TestConfig_OpenKVStore_Errors(t *testing.T) {
	_, err := cheesyblog.Config{Backend: "etcd"}.OpenKVStore(testLogger())
	assert.ErrorIs(t, err, cheesyblog.ErrUnknownBackend)

	_, err = cheesyblog.Config{Backend: cheesyblog.BackendBBolt}.OpenKVStore(testLogger())
	assert.Error(t, err)

	_, err = cheesyblog.Config{Backend: cheesyblog.BackendSQLite}.OpenKVStore(testLogger())
	assert.Error(t, err)
}

func TestOpenSite_Backends(t *testing.T) {
	backends := []cheesyblog.Backend{
		cheesyblog.BackendMemory,
		cheesyblog.BackendBBolt,
		cheesyblog.BackendSQLite,
	}

	for _, backend := range backends {
		t.Run(string(backend), func(t *testing.T) {
			apply := requireApplied(t)
			cfg := cheesyblog.Config{Backend: backend, DataDir: t.TempDir()}

			site, err := cheesyblog.OpenSite(cfg, testLogger())
			require.NoError(t, err)

			apply(site.Posts.ToggleLike(2))
			apply(site.Posts.AddComment(2, "Cheesy!"))
			_, err = site.Reviews.Submit(cheesyblog.ReviewInput{Review: "Yum", Rating: 4, Date: "2024-11-05"})
			require.NoError(t, err)
			_, err = site.Reservations.Book(cheesyblog.ReservationRequest{
				Email: "a@b.co", Phone: "555-123-4567", Date: "2024-12-24", Time: "18:00",
			})
			require.NoError(t, err)
			require.NoError(t, site.Close())

			if backend == cheesyblog.BackendMemory {
				return
			}

			reopened, err := cheesyblog.OpenSite(cfg, testLogger())
			require.NoError(t, err)
			defer func() {
				assert.NoError(t, reopened.Close())
			}()

			post, ok := reopened.Posts.Post(2)
			require.True(t, ok)
			assert.Equal(t, 1, post.Likes)
			assert.Equal(t, []string{"Cheesy!"}, post.Comments)
			assert.True(t, reopened.Posts.IsLiked(2))
			assert.Len(t, reopened.Reviews.Reviews(), 1)
			assert.True(t, reopened.Reservations.IsBooked("2024-12-24", "18:00"))
		})
	}
}

func TestOpenSite_SeedDir(t *testing.T) {
	site, err := cheesyblog.OpenSite(cheesyblog.Config{SeedDir: "testdata/seed"}, testLogger())
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, site.Close())
	}()

	posts := site.Posts.Posts()
	require.Len(t, posts, 2)
	assert.Contains(t, posts[0].Description, "<strong>Take It Cheesy</strong>")

	_, err = cheesyblog.OpenSite(cheesyblog.Config{SeedDir: "testdata/badseed"}, testLogger())
	assert.ErrorIs(t, err, cheesyblog.ErrInvalidPostMeta)

	_, err = cheesyblog.OpenSite(cheesyblog.Config{SeedDir: t.TempDir()}, testLogger())
	assert.Error(t, err)
}

func TestOpenSite_Menu(t *testing.T) {
	site, err := cheesyblog.OpenSite(cheesyblog.Config{MenuFile: "testdata/menu.json"}, testLogger())
	require.NoError(t, err)
	assert.False(t, site.Menu.Unavailable)
	assert.Len(t, site.Menu.Items, 2)
	require.NoError(t, site.Close())

	site, err = cheesyblog.OpenSite(cheesyblog.Config{MenuFile: "testdata/missing.json"}, testLogger())
	require.NoError(t, err)
	assert.True(t, site.Menu.Unavailable)
	assert.Empty(t, site.Menu.Items)
	require.NoError(t, site.Close())
}
