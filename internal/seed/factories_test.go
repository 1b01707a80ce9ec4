package seed

import (
	"testing"

	"devcomm/internal/models"
	"devcomm/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryBuildCommunity(t *testing.T) {
	gofakeit.Seed(7)
	f := NewFactory(nil)

	for i := 0; i < 25; i++ {
		c := f.BuildCommunity()

		assert.Empty(t, validation.RequiredCommunityFields(c))
		assert.NoError(t, validation.ValidateJoiningLink(c.JoiningLink))
		assert.Empty(t, validation.ValidateCommunityEnums(c))
		assert.NotEmpty(t, c.Tags)
		assert.GreaterOrEqual(t, c.MemberCount, 0)
	}
}

func TestFactoryBuildCommunity_Overrides(t *testing.T) {
	f := NewFactory(nil)

	c := f.BuildCommunity(func(c *models.Community) {
		c.Title = "Override Town"
		c.TechStack = "Python"
	})

	assert.Equal(t, "Override Town", c.Title)
	assert.Equal(t, "Python", c.TechStack)
}

func TestFactoryCreateCommunity(t *testing.T) {
	db := setupSeedTestDB(t)
	f := NewFactory(db)

	created, err := f.CreateCommunity()
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	var stored models.Community
	require.NoError(t, db.First(&stored, created.ID).Error)
	assert.Equal(t, created.Title, stored.Title)
}
