// Package validation contains input validation rules for user-submitted data.
package validation

import (
	"fmt"
	"net/url"
	"strings"

	"devcomm/internal/models"
)

// NormalizeTags trims every tag and drops empty entries, preserving order.
func NormalizeTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// SplitTags normalizes a comma-separated tag string into an ordered list.
func SplitTags(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}

// RequiredCommunityFields checks the always-required community fields after
// trimming and returns one FieldError per offending field.
func RequiredCommunityFields(c *models.Community) []models.FieldError {
	var errs []models.FieldError
	required := []struct {
		field string
		value string
	}{
		{"title", c.Title},
		{"description", c.Description},
		{"tech_stack", c.TechStack},
		{"platform", string(c.Platform)},
		{"location_mode", string(c.LocationMode)},
		{"joining_link", c.JoiningLink},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, models.FieldError{
				Field:   r.field,
				Message: fmt.Sprintf("%s is required", r.field),
			})
		}
	}
	return errs
}

// ValidateJoiningLink rejects joining links that do not parse as absolute
// URLs. Kept distinct from the required-field check so callers can surface
// a different message.
func ValidateJoiningLink(link string) error {
	u, err := url.Parse(link)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("Invalid joining link URL format")
	}
	return nil
}

// ValidateCommunityEnums checks platform and location mode against their
// enumerations. activity_level is not checked here: invalid values are
// coerced to the default during normalization.
func ValidateCommunityEnums(c *models.Community) []models.FieldError {
	var errs []models.FieldError
	if c.Platform != "" && !models.ValidPlatform(c.Platform) {
		errs = append(errs, models.FieldError{
			Field:   "platform",
			Message: fmt.Sprintf("platform must be one of the supported platforms, got %q", c.Platform),
		})
	}
	if c.LocationMode != "" && !models.ValidLocationMode(c.LocationMode) {
		errs = append(errs, models.FieldError{
			Field:   "location_mode",
			Message: fmt.Sprintf("location_mode must be one of the supported modes, got %q", c.LocationMode),
		})
	}
	return errs
}
