// Package seed provides database seeding utilities: a YAML fixture loader
// for the community catalog and generators for development and testing.
package seed

import (
	"context"
	"fmt"
	"os"

	"devcomm/internal/classify"
	"devcomm/internal/models"
	"devcomm/internal/repository"

	"gopkg.in/yaml.v3"
)

// FixtureRecord mirrors one entry of the seed fixture file.
type FixtureRecord struct {
	Title           string   `yaml:"title"`
	Description     string   `yaml:"description"`
	FullDescription string   `yaml:"full_description"`
	TechStack       string   `yaml:"tech_stack"`
	Platform        string   `yaml:"platform"`
	LocationMode    string   `yaml:"location_mode"`
	Tags            []string `yaml:"tags"`
	CommunityPage   string   `yaml:"community_page"`
	JoiningLink     string   `yaml:"joining_link"`
	LogoURL         string   `yaml:"logo_url"`
	MemberCount     int      `yaml:"member_count"`
	ActivityLevel   string   `yaml:"activity_level"`
	Rules           string   `yaml:"rules"`
}

func (r FixtureRecord) toModel() *models.Community {
	activity := models.ActivityLevel(r.ActivityLevel)
	if !models.ValidActivityLevel(activity) {
		activity = models.ActivityMedium
	}
	return &models.Community{
		Title:           r.Title,
		Description:     r.Description,
		FullDescription: r.FullDescription,
		TechStack:       r.TechStack,
		Platform:        models.Platform(r.Platform),
		LocationMode:    models.LocationMode(r.LocationMode),
		Tags:            models.StringList(r.Tags),
		CommunityPage:   r.CommunityPage,
		JoiningLink:     r.JoiningLink,
		LogoURL:         r.LogoURL,
		MemberCount:     r.MemberCount,
		ActivityLevel:   activity,
		Rules:           r.Rules,
	}
}

func (r FixtureRecord) validate(index int) error {
	required := map[string]string{
		"title":         r.Title,
		"description":   r.Description,
		"platform":      r.Platform,
		"location_mode": r.LocationMode,
		"joining_link":  r.JoiningLink,
	}
	for field, value := range required {
		if value == "" {
			return fmt.Errorf("fixture record %d (%q): %s is required", index, r.Title, field)
		}
	}
	if !models.ValidPlatform(models.Platform(r.Platform)) {
		return fmt.Errorf("fixture record %d (%q): unknown platform %q", index, r.Title, r.Platform)
	}
	if !models.ValidLocationMode(models.LocationMode(r.LocationMode)) {
		return fmt.Errorf("fixture record %d (%q): unknown location_mode %q", index, r.Title, r.LocationMode)
	}
	if r.MemberCount < 0 {
		return fmt.Errorf("fixture record %d (%q): member_count must not be negative", index, r.Title)
	}
	return nil
}

// LoadFixture reads the community fixture file and returns the records with
// the tech-stack classifier applied to each.
func LoadFixture(path string) ([]*models.Community, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}

	var records []FixtureRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}

	communities := make([]*models.Community, 0, len(records))
	for i, record := range records {
		if err := record.validate(i); err != nil {
			return nil, err
		}
		c := record.toModel()
		c.TechStack = classify.TechStack(*c)
		communities = append(communities, c)
	}
	return communities, nil
}

// Communities refreshes the catalog from the fixture file: every record is
// classified, then the table is bulk delete-then-reinserted in one
// transaction. Returns the tech-stack distribution of the inserted records.
func Communities(ctx context.Context, repo repository.CommunityRepository, fixturePath string) (map[string]int, error) {
	communities, err := LoadFixture(fixturePath)
	if err != nil {
		return nil, err
	}

	if err := repo.ReplaceAll(ctx, communities); err != nil {
		return nil, fmt.Errorf("reseed communities: %w", err)
	}

	distribution := make(map[string]int)
	for _, c := range communities {
		distribution[c.TechStack]++
	}
	return distribution, nil
}
