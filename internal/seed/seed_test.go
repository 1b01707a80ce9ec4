package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"devcomm/internal/models"
	"devcomm/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const shippedFixture = "fixtures/communities.yml"

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Community{}))
	return db
}

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFixture_ShippedCatalog(t *testing.T) {
	t.Parallel()

	communities, err := LoadFixture(shippedFixture)
	require.NoError(t, err)
	require.NotEmpty(t, communities)

	byTitle := make(map[string]*models.Community, len(communities))
	for _, c := range communities {
		assert.NotEmpty(t, c.TechStack, "classifier must label %q", c.Title)
		assert.True(t, models.ValidPlatform(c.Platform), "platform of %q", c.Title)
		assert.True(t, models.ValidLocationMode(c.LocationMode), "location_mode of %q", c.Title)
		assert.True(t, models.ValidActivityLevel(c.ActivityLevel), "activity_level of %q", c.Title)
		byTitle[c.Title] = c
	}

	// Spot checks across the classifier's behaviors.
	assert.Equal(t, "React", byTitle["Reactiflux"].TechStack)
	assert.Equal(t, "React", byTitle["Next.js"].TechStack)
	assert.Equal(t, "Python", byTitle["PySlackers"].TechStack)
	assert.Equal(t, "Django", byTitle["Django"].TechStack, "nested override")
	assert.Equal(t, "Flask", byTitle["Flask"].TechStack, "nested override")
	assert.Equal(t, "Machine Learning", byTitle["Kaggle"].TechStack)
	assert.Equal(t, "Vue", byTitle["Vue.js"].TechStack)
	assert.Equal(t, "Angular", byTitle["Angular"].TechStack)
	// No keyword match: canonical pre-set value preserved.
	assert.Equal(t, "Node.js", byTitle["Kubernetes"].TechStack)
	// No keyword match: non-canonical pre-set value preserved.
	assert.Equal(t, "Entrepreneurship", byTitle["Indie Hackers"].TechStack)
	// No keyword match and no pre-set value: General.
	assert.Equal(t, "General", byTitle["GDG Bangalore"].TechStack)
}

func TestLoadFixture_Validation(t *testing.T) {
	t.Parallel()

	t.Run("missing required field", func(t *testing.T) {
		path := writeFixture(t, `
- title: "No Link"
  description: "d"
  platform: "Discord"
  location_mode: "Global/Online"
`)
		_, err := LoadFixture(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "joining_link is required")
	})

	t.Run("unknown platform", func(t *testing.T) {
		path := writeFixture(t, `
- title: "Bad Platform"
  description: "d"
  platform: "MySpace"
  location_mode: "Global/Online"
  joining_link: "https://example.com"
`)
		_, err := LoadFixture(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown platform")
	})

	t.Run("invalid activity level coerces to Medium", func(t *testing.T) {
		path := writeFixture(t, `
- title: "Odd Level"
  description: "d"
  platform: "Discord"
  location_mode: "Global/Online"
  joining_link: "https://example.com"
  activity_level: "Extreme"
`)
		communities, err := LoadFixture(path)
		require.NoError(t, err)
		require.Len(t, communities, 1)
		assert.Equal(t, models.ActivityMedium, communities[0].ActivityLevel)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFixture(filepath.Join(t.TempDir(), "nope.yml"))
		assert.Error(t, err)
	})
}

func TestCommunities_ReplacesCatalog(t *testing.T) {
	t.Parallel()
	db := setupSeedTestDB(t)
	repo := repository.NewCommunityRepository(db)
	ctx := context.Background()

	stale := &models.Community{
		Title: "Stale", Description: "d", TechStack: "General",
		Platform: models.PlatformForum, LocationMode: models.LocationGlobalOnline,
		JoiningLink: "https://example.com", ActivityLevel: models.ActivityMedium,
	}
	require.NoError(t, db.Create(stale).Error)

	distribution, err := Communities(ctx, repo, shippedFixture)
	require.NoError(t, err)

	total := 0
	for _, n := range distribution {
		total += n
	}

	var count int64
	require.NoError(t, db.Model(&models.Community{}).Count(&count).Error)
	assert.EqualValues(t, total, count, "distribution must account for every row")

	var staleCount int64
	require.NoError(t, db.Model(&models.Community{}).
		Where("title = ?", "Stale").Count(&staleCount).Error)
	assert.Zero(t, staleCount, "pre-existing rows are replaced")

	// Reseeding is idempotent.
	again, err := Communities(ctx, repo, shippedFixture)
	require.NoError(t, err)
	assert.Equal(t, distribution, again)
	require.NoError(t, db.Model(&models.Community{}).Count(&count).Error)
	assert.EqualValues(t, total, count)
}

func TestCommunities_BadFixtureLeavesCatalogUntouched(t *testing.T) {
	t.Parallel()
	db := setupSeedTestDB(t)
	repo := repository.NewCommunityRepository(db)
	ctx := context.Background()

	existing := &models.Community{
		Title: "Keep Me", Description: "d", TechStack: "General",
		Platform: models.PlatformForum, LocationMode: models.LocationGlobalOnline,
		JoiningLink: "https://example.com", ActivityLevel: models.ActivityMedium,
	}
	require.NoError(t, db.Create(existing).Error)

	path := writeFixture(t, `
- title: "Broken"
  description: "d"
  platform: "MySpace"
  location_mode: "Global/Online"
  joining_link: "https://example.com"
`)
	_, err := Communities(ctx, repo, path)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Community{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
