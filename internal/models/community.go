// Package models contains data structures for the application's domain models.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Platform identifies where a community lives.
type Platform string

// Platform values accepted by the catalog.
const (
	PlatformDiscord   Platform = "Discord"
	PlatformSlack     Platform = "Slack"
	PlatformReddit    Platform = "Reddit"
	PlatformForum     Platform = "Forum"
	PlatformTelegram  Platform = "Telegram"
	PlatformWhatsApp  Platform = "WhatsApp"
	PlatformGitHub    Platform = "GitHub"
	PlatformTwitter   Platform = "Twitter"
	PlatformMeetup    Platform = "Meetup"
	PlatformLinkedIn  Platform = "LinkedIn"
	PlatformBlog      Platform = "Blog"
	PlatformCommunity Platform = "Community"
	PlatformGuide     Platform = "Guide"
)

// Platforms lists every valid platform value.
var Platforms = []Platform{
	PlatformDiscord, PlatformSlack, PlatformReddit, PlatformForum,
	PlatformTelegram, PlatformWhatsApp, PlatformGitHub, PlatformTwitter,
	PlatformMeetup, PlatformLinkedIn, PlatformBlog, PlatformCommunity,
	PlatformGuide,
}

// ValidPlatform reports whether p is one of the enumerated platforms.
func ValidPlatform(p Platform) bool {
	for _, v := range Platforms {
		if p == v {
			return true
		}
	}
	return false
}

// LocationMode describes how a community meets.
type LocationMode string

// LocationMode values accepted by the catalog.
const (
	LocationGlobalOnline        LocationMode = "Global/Online"
	LocationGlobalOnlineOffline LocationMode = "Global/Online & Offline"
	LocationOffline             LocationMode = "Offline"
	LocationHybrid              LocationMode = "Hybrid"
	LocationIndiaOnline         LocationMode = "India/Online"
)

// LocationModes lists every valid location mode value.
var LocationModes = []LocationMode{
	LocationGlobalOnline, LocationGlobalOnlineOffline, LocationOffline,
	LocationHybrid, LocationIndiaOnline,
}

// ValidLocationMode reports whether m is one of the enumerated modes.
func ValidLocationMode(m LocationMode) bool {
	for _, v := range LocationModes {
		if m == v {
			return true
		}
	}
	return false
}

// ActivityLevel is the engagement tier of a community.
type ActivityLevel string

// ActivityLevel values accepted by the catalog.
const (
	ActivityLow          ActivityLevel = "Low"
	ActivityMedium       ActivityLevel = "Medium"
	ActivityHigh         ActivityLevel = "High"
	ActivityVeryActive   ActivityLevel = "Very Active"
	ActivityHighSeasonal ActivityLevel = "High (Seasonal)"
)

// ActivityLevelRank orders activity levels for the featured listing.
// Higher means more active.
var ActivityLevelRank = map[ActivityLevel]int{
	ActivityLow:          1,
	ActivityMedium:       2,
	ActivityHigh:         3,
	ActivityHighSeasonal: 4,
	ActivityVeryActive:   5,
}

// ValidActivityLevel reports whether a is one of the enumerated levels.
func ValidActivityLevel(a ActivityLevel) bool {
	_, ok := ActivityLevelRank[a]
	return ok
}

// StringList is an ordered list of strings stored as a JSON array column.
// A custom Valuer/Scanner keeps the column portable between PostgreSQL and
// the sqlite driver used in tests.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// Community is a catalog entry for a developer community.
type Community struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	Title           string        `gorm:"not null" json:"title"`
	Description     string        `gorm:"type:text;not null" json:"description"`
	FullDescription string        `gorm:"type:text" json:"full_description"`
	TechStack       string        `gorm:"not null;index" json:"tech_stack"`
	Platform        Platform      `gorm:"type:varchar(20);not null;index" json:"platform"`
	LocationMode    LocationMode  `gorm:"type:varchar(40);not null;index" json:"location_mode"`
	Tags            StringList    `gorm:"type:text" json:"tags"`
	CommunityPage   string        `json:"community_page"`
	JoiningLink     string        `gorm:"not null" json:"joining_link"`
	LogoURL         string        `json:"logo_url"`
	MemberCount     int           `gorm:"not null;default:0" json:"member_count"`
	ActivityLevel   ActivityLevel `gorm:"type:varchar(20);not null;default:'Medium';index" json:"activity_level"`
	Rules           string        `gorm:"type:text" json:"rules"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Community) TableName() string {
	return "communities"
}
