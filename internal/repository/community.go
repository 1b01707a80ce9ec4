// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"strings"

	"devcomm/internal/cache"
	"devcomm/internal/models"

	"gorm.io/gorm"
)

// CommunityFilter holds the optional listing parameters. Zero values mean
// "no constraint".
type CommunityFilter struct {
	Search        string
	TechStack     string
	Platform      models.Platform
	LocationMode  models.LocationMode
	ActivityLevel models.ActivityLevel
	Page          int
	Limit         int
}

// CommunityPage is one page of listing results plus pagination totals.
type CommunityPage struct {
	Items []*models.Community
	Total int64
	Page  int
	Pages int
}

// CommunityRepository defines the interface for community data operations.
type CommunityRepository interface {
	Create(ctx context.Context, community *models.Community) error
	GetByID(ctx context.Context, id uint) (*models.Community, error)
	Related(ctx context.Context, community *models.Community, limit int) ([]*models.Community, error)
	List(ctx context.Context, filter CommunityFilter) (*CommunityPage, error)
	Featured(ctx context.Context, limit int) ([]*models.Community, error)
	ReplaceAll(ctx context.Context, communities []*models.Community) error
}

// communityRepository implements CommunityRepository.
type communityRepository struct {
	db *gorm.DB
}

// NewCommunityRepository creates a new community repository.
func NewCommunityRepository(db *gorm.DB) CommunityRepository {
	return &communityRepository{db: db}
}

// escapeLike escapes LIKE metacharacters so user input cannot act as a
// pattern. Used with an explicit `ESCAPE '\'` clause, which Postgres and
// sqlite both honor.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// applyFilter builds the conjunctive WHERE clause for the listing query.
// Free-text search is a case-insensitive substring match across title,
// description, and the serialized tags column; tech_stack is a
// case-insensitive substring match with metacharacters escaped; the
// remaining parameters are exact equality. LOWER(...) LIKE is used instead
// of ILIKE so the predicate behaves identically on the sqlite test driver.
func (r *communityRepository) applyFilter(db *gorm.DB, f CommunityFilter) *gorm.DB {
	if f.Search != "" {
		like := "%" + strings.ToLower(escapeLike(f.Search)) + "%"
		db = db.Where(
			`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(tags) LIKE ? ESCAPE '\'`,
			like, like, like,
		)
	}
	if f.TechStack != "" {
		like := "%" + strings.ToLower(escapeLike(f.TechStack)) + "%"
		db = db.Where(`LOWER(tech_stack) LIKE ? ESCAPE '\'`, like)
	}
	if f.Platform != "" {
		db = db.Where("platform = ?", f.Platform)
	}
	if f.LocationMode != "" {
		db = db.Where("location_mode = ?", f.LocationMode)
	}
	if f.ActivityLevel != "" {
		db = db.Where("activity_level = ?", f.ActivityLevel)
	}
	return db
}

// activityRankExpr orders the five activity levels explicitly instead of
// relying on string collation.
const activityRankExpr = `CASE activity_level ` +
	`WHEN 'Very Active' THEN 5 ` +
	`WHEN 'High (Seasonal)' THEN 4 ` +
	`WHEN 'High' THEN 3 ` +
	`WHEN 'Medium' THEN 2 ` +
	`WHEN 'Low' THEN 1 ELSE 0 END`

func (r *communityRepository) Create(ctx context.Context, community *models.Community) error {
	if err := r.db.WithContext(ctx).Create(community).Error; err != nil {
		return err
	}
	cache.InvalidateFeatured(ctx)
	return nil
}

func (r *communityRepository) GetByID(ctx context.Context, id uint) (*models.Community, error) {
	var community models.Community
	err := cache.Aside(ctx, cache.CommunityKey(id), &community, cache.CommunityTTL, func() error {
		return r.db.WithContext(ctx).First(&community, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &community, nil
}

// Related returns up to limit other communities sharing the tech stack or at
// least one tag, ordered by ID ascending as a stable tie-break.
func (r *communityRepository) Related(ctx context.Context, community *models.Community, limit int) ([]*models.Community, error) {
	match := r.db.Where("tech_stack = ?", community.TechStack)
	for _, tag := range community.Tags {
		// Tags are stored as a JSON array, so an exact tag is always
		// surrounded by double quotes in the column text.
		match = match.Or(`tags LIKE ? ESCAPE '\'`, `%"`+escapeLike(tag)+`"%`)
	}

	var related []*models.Community
	err := r.db.WithContext(ctx).
		Where("id <> ?", community.ID).
		Where(match).
		Order("id ASC").
		Limit(limit).
		Find(&related).Error
	if err != nil {
		return nil, err
	}
	return related, nil
}

func (r *communityRepository) List(ctx context.Context, filter CommunityFilter) (*CommunityPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	var total int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.Community{}), filter).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var items []*models.Community
	err := r.applyFilter(r.db.WithContext(ctx), filter).
		Order("member_count DESC, created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &CommunityPage{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Pages: pages,
	}, nil
}

func (r *communityRepository) Featured(ctx context.Context, limit int) ([]*models.Community, error) {
	var featured []*models.Community
	err := cache.Aside(ctx, cache.FeaturedKey, &featured, cache.FeaturedTTL, func() error {
		return r.db.WithContext(ctx).
			Order("member_count DESC, " + activityRankExpr + " DESC").
			Limit(limit).
			Find(&featured).Error
	})
	if err != nil {
		return nil, err
	}
	return featured, nil
}

// ReplaceAll performs the seeding refresh: bulk delete of every community
// followed by reinsertion, inside a single transaction.
func (r *communityRepository) ReplaceAll(ctx context.Context, communities []*models.Community) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.Community{}).Error; err != nil {
			return err
		}
		if len(communities) == 0 {
			return nil
		}
		return tx.CreateInBatches(communities, 100).Error
	})
	if err != nil {
		return err
	}
	// Every single-community entry may now point at a deleted or
	// reclassified record, so the whole keyspace goes, not just featured.
	cache.InvalidateCommunities(ctx)
	cache.InvalidateFeatured(ctx)
	return nil
}
