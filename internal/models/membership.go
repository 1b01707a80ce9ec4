package models

import "time"

// Membership records that a user joined a community.
type Membership struct {
	UserID      uint       `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	CommunityID uint       `gorm:"primaryKey;autoIncrement:false" json:"community_id"`
	Community   *Community `gorm:"foreignKey:CommunityID" json:"community,omitempty"`
	CreatedAt   time.Time  `json:"joined_at"`
}

// TableName specifies the table name for GORM.
func (Membership) TableName() string {
	return "memberships"
}

// SavedCommunity records that a user bookmarked a community.
type SavedCommunity struct {
	UserID      uint       `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	CommunityID uint       `gorm:"primaryKey;autoIncrement:false" json:"community_id"`
	Community   *Community `gorm:"foreignKey:CommunityID" json:"community,omitempty"`
	CreatedAt   time.Time  `json:"saved_at"`
}

// TableName specifies the table name for GORM.
func (SavedCommunity) TableName() string {
	return "saved_communities"
}
