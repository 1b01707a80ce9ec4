package server

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"devcomm/internal/models"
	"devcomm/internal/observability"
	"devcomm/internal/repository"
	"devcomm/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	relatedLimit  = 3
	featuredLimit = 6
)

// flexibleTags accepts either a JSON array of strings or a single
// comma-separated string. Either form normalizes to the same ordered list.
type flexibleTags []string

func (t *flexibleTags) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = validation.NormalizeTags(list)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("tags must be an array of strings or a comma-separated string")
	}
	*t = validation.NormalizeTags(validation.SplitTags(s))
	return nil
}

// flexibleCount accepts a number or a numeric string. Absent or unparseable
// input stays 0; negative values are rejected during validation.
type flexibleCount int

func (n *flexibleCount) UnmarshalJSON(data []byte) error {
	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		*n = flexibleCount(i)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*n = 0
		return nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		*n = 0
		return nil
	}
	*n = flexibleCount(parsed)
	return nil
}

// createCommunityRequest is the loose request-body shape, normalized into a
// models.Community before validation.
type createCommunityRequest struct {
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	FullDescription string        `json:"full_description"`
	TechStack       string        `json:"tech_stack"`
	Platform        string        `json:"platform"`
	LocationMode    string        `json:"location_mode"`
	Tags            flexibleTags  `json:"tags"`
	CommunityPage   string        `json:"community_page"`
	JoiningLink     string        `json:"joining_link"`
	LogoURL         string        `json:"logo_url"`
	MemberCount     flexibleCount `json:"member_count"`
	ActivityLevel   string        `json:"activity_level"`
}

func (req *createCommunityRequest) toModel() *models.Community {
	activity := models.ActivityLevel(strings.TrimSpace(req.ActivityLevel))
	if !models.ValidActivityLevel(activity) {
		activity = models.ActivityMedium
	}

	return &models.Community{
		Title:           strings.TrimSpace(req.Title),
		Description:     strings.TrimSpace(req.Description),
		FullDescription: strings.TrimSpace(req.FullDescription),
		TechStack:       strings.TrimSpace(req.TechStack),
		Platform:        models.Platform(strings.TrimSpace(req.Platform)),
		LocationMode:    models.LocationMode(strings.TrimSpace(req.LocationMode)),
		Tags:            models.StringList(req.Tags),
		CommunityPage:   strings.TrimSpace(req.CommunityPage),
		JoiningLink:     strings.TrimSpace(req.JoiningLink),
		LogoURL:         strings.TrimSpace(req.LogoURL),
		MemberCount:     int(req.MemberCount),
		ActivityLevel:   activity,
	}
}

// GetCommunities handles GET /api/communities
func (s *Server) GetCommunities(c *fiber.Ctx) error {
	page, limit := parseListingParams(c, 20)

	filter := repository.CommunityFilter{
		Search:        c.Query("search"),
		TechStack:     c.Query("tech_stack"),
		Platform:      models.Platform(c.Query("platform")),
		LocationMode:  models.LocationMode(c.Query("location_mode")),
		ActivityLevel: models.ActivityLevel(c.Query("activity_level")),
		Page:          page,
		Limit:         limit,
	}

	result, err := s.communityRepo.List(c.Context(), filter)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	observability.ListingQueries.WithLabelValues(
		strconv.FormatBool(filter.Search != "")).Inc()

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(result.Items),
		"total":   result.Total,
		"page":    result.Page,
		"pages":   result.Pages,
		"data":    result.Items,
	})
}

// GetCommunity handles GET /api/communities/:id
func (s *Server) GetCommunity(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	community, err := s.communityRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Community", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	related, err := s.communityRepo.Related(c.Context(), community, relatedLimit)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    community,
		"related": related,
	})
}

// CreateCommunity handles POST /api/communities
func (s *Server) CreateCommunity(c *fiber.Ctx) error {
	var req createCommunityRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	community := req.toModel()

	if fields := validation.RequiredCommunityFields(community); len(fields) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError(fields))
	}

	if err := validation.ValidateJoiningLink(community.JoiningLink); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	if fields := validation.ValidateCommunityEnums(community); len(fields) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError(fields))
	}

	if community.MemberCount < 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError([]models.FieldError{
				{Field: "member_count", Message: "member_count must not be negative"},
			}))
	}

	if err := s.communityRepo.Create(c.Context(), community); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	observability.CommunitiesCreated.Inc()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    community,
	})
}

// GetFeaturedCommunities handles GET /api/communities/featured/list
func (s *Server) GetFeaturedCommunities(c *fiber.Ctx) error {
	featured, err := s.communityRepo.Featured(c.Context(), featuredLimit)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(featured),
		"data":    featured,
	})
}
