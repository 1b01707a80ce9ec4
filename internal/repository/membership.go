package repository

import (
	"context"

	"devcomm/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MyCommunities is the combined join/save view for one user.
type MyCommunities struct {
	Joined []models.Membership     `json:"joined"`
	Saved  []models.SavedCommunity `json:"saved"`
}

// MembershipRepository defines join/save relationship operations.
type MembershipRepository interface {
	Join(ctx context.Context, userID, communityID uint) error
	Leave(ctx context.Context, userID, communityID uint) error
	Save(ctx context.Context, userID, communityID uint) error
	Unsave(ctx context.Context, userID, communityID uint) error
	ForUser(ctx context.Context, userID uint) (*MyCommunities, error)
}

type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository.
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

// Join is idempotent: re-joining an already joined community is a no-op.
func (r *membershipRepository) Join(ctx context.Context, userID, communityID uint) error {
	membership := models.Membership{UserID: userID, CommunityID: communityID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&membership).Error
}

func (r *membershipRepository) Leave(ctx context.Context, userID, communityID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND community_id = ?", userID, communityID).
		Delete(&models.Membership{}).Error
}

// Save is idempotent like Join.
func (r *membershipRepository) Save(ctx context.Context, userID, communityID uint) error {
	saved := models.SavedCommunity{UserID: userID, CommunityID: communityID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&saved).Error
}

func (r *membershipRepository) Unsave(ctx context.Context, userID, communityID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND community_id = ?", userID, communityID).
		Delete(&models.SavedCommunity{}).Error
}

func (r *membershipRepository) ForUser(ctx context.Context, userID uint) (*MyCommunities, error) {
	var mine MyCommunities

	if err := r.db.WithContext(ctx).
		Preload("Community").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&mine.Joined).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Community").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&mine.Saved).Error; err != nil {
		return nil, err
	}

	return &mine, nil
}
