package validation

import (
	"testing"

	"devcomm/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"React", "JavaScript"},
		NormalizeTags([]string{"  React ", "", "JavaScript", "   "}))
	assert.Empty(t, NormalizeTags(nil))
	assert.Empty(t, NormalizeTags([]string{"", "  "}))
}

// Tag input as an array and as a comma-separated string must normalize to
// the same ordered list for equivalent content.
func TestSplitTagsMatchesArrayForm(t *testing.T) {
	t.Parallel()

	fromString := SplitTags(" React , JavaScript ,,Frontend ")
	fromArray := NormalizeTags([]string{"React", " JavaScript", "Frontend"})
	assert.Equal(t, fromArray, fromString)
}

func TestRequiredCommunityFields(t *testing.T) {
	t.Parallel()

	t.Run("all missing", func(t *testing.T) {
		errs := RequiredCommunityFields(&models.Community{})
		fields := make([]string, 0, len(errs))
		for _, e := range errs {
			fields = append(fields, e.Field)
			assert.Contains(t, e.Message, "is required")
		}
		assert.Equal(t, []string{
			"title", "description", "tech_stack",
			"platform", "location_mode", "joining_link",
		}, fields)
	})

	t.Run("whitespace counts as missing", func(t *testing.T) {
		errs := RequiredCommunityFields(&models.Community{Title: "   "})
		assert.NotEmpty(t, errs)
		assert.Equal(t, "title", errs[0].Field)
	})

	t.Run("complete record passes", func(t *testing.T) {
		c := &models.Community{
			Title:        "Reactiflux",
			Description:  "React chat",
			TechStack:    "React",
			Platform:     models.PlatformDiscord,
			LocationMode: models.LocationGlobalOnline,
			JoiningLink:  "https://discord.com/invite/reactiflux",
		}
		assert.Empty(t, RequiredCommunityFields(c))
	})
}

func TestValidateJoiningLink(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateJoiningLink("https://discord.gg/reactiflux"))
	assert.NoError(t, ValidateJoiningLink("http://example.com/path?x=1"))

	for _, link := range []string{"", "not a url", "discord.gg/reactiflux", "https://"} {
		err := ValidateJoiningLink(link)
		if assert.Error(t, err, "link %q", link) {
			assert.Equal(t, "Invalid joining link URL format", err.Error())
		}
	}
}

func TestValidateCommunityEnums(t *testing.T) {
	t.Parallel()

	c := &models.Community{
		Platform:     "MySpace",
		LocationMode: "Moonbase",
	}
	errs := ValidateCommunityEnums(c)
	assert.Len(t, errs, 2)
	assert.Equal(t, "platform", errs[0].Field)
	assert.Equal(t, "location_mode", errs[1].Field)

	valid := &models.Community{
		Platform:     models.PlatformSlack,
		LocationMode: models.LocationHybrid,
	}
	assert.Empty(t, ValidateCommunityEnums(valid))
}
