package seed

import (
	"fmt"

	"devcomm/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds community records with randomized content. Intended for
// development data and tests only.
type Factory struct {
	db *gorm.DB
}

// NewFactory creates a new Factory bound to the provided Gorm DB. The DB may
// be nil when only BuildCommunity is used.
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{db: db}
}

var factoryTagPool = []string{
	"Beginners", "Frontend", "Backend", "JavaScript", "Python", "React",
	"Node.js", "DevOps", "Careers", "Open Source", "Django", "Flask",
	"Machine Learning", "Vue", "Angular", "Databases", "Cloud",
}

// BuildCommunity constructs a community without persisting it. Overrides run
// after the random fields are populated.
func (f *Factory) BuildCommunity(overrides ...func(*models.Community)) *models.Community {
	tags := make(models.StringList, 0, 3)
	for i := 0; i < gofakeit.Number(1, 3); i++ {
		tags = append(tags, factoryTagPool[gofakeit.Number(0, len(factoryTagPool)-1)])
	}

	platform := models.Platforms[gofakeit.Number(0, len(models.Platforms)-1)]
	mode := models.LocationModes[gofakeit.Number(0, len(models.LocationModes)-1)]

	c := &models.Community{
		Title:           gofakeit.Company() + " " + gofakeit.HackerNoun(),
		Description:     gofakeit.Sentence(8),
		FullDescription: gofakeit.Paragraph(1, 3, 8, " "),
		TechStack:       "General",
		Platform:        platform,
		LocationMode:    mode,
		Tags:            tags,
		JoiningLink:     fmt.Sprintf("https://example.com/join/%s", gofakeit.UUID()),
		CommunityPage:   fmt.Sprintf("https://example.com/c/%s", gofakeit.Username()),
		MemberCount:     gofakeit.Number(0, 250000),
		ActivityLevel:   models.ActivityMedium,
	}

	for _, override := range overrides {
		override(c)
	}
	return c
}

// CreateCommunity builds and persists a community.
func (f *Factory) CreateCommunity(overrides ...func(*models.Community)) (*models.Community, error) {
	c := f.BuildCommunity(overrides...)
	if err := f.db.Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}
