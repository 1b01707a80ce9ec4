package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"devcomm/internal/config"
	"devcomm/internal/models"
	"devcomm/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTest(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Community{},
		&models.Membership{},
		&models.SavedCommunity{},
	))

	s := &Server{
		config:        &config.Config{Env: "test", JWTSecret: "test-secret-test-secret-test-secret"},
		db:            db,
		userRepo:      repository.NewUserRepository(db),
		communityRepo: repository.NewCommunityRepository(db),
		memberRepo:    repository.NewMembershipRepository(db),
	}
	return s, db
}

func createTestCommunity(t *testing.T, db *gorm.DB, title string, memberCount int, level models.ActivityLevel) *models.Community {
	t.Helper()
	c := &models.Community{
		Title: title, Description: "A place to chat", TechStack: "General",
		Platform: models.PlatformDiscord, LocationMode: models.LocationGlobalOnline,
		Tags: models.StringList{"Chat"}, JoiningLink: "https://example.com/invite",
		MemberCount: memberCount, ActivityLevel: level,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestGetCommunities_Envelope(t *testing.T) {
	t.Parallel()
	s, db := setupHandlerTest(t)
	for i := 0; i < 25; i++ {
		createTestCommunity(t, db, fmt.Sprintf("Community %d", i), i, models.ActivityMedium)
	}

	app := fiber.New()
	app.Get("/api/communities", s.GetCommunities)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/communities?page=2&limit=10", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 10, body["count"])
	assert.EqualValues(t, 25, body["total"])
	assert.EqualValues(t, 2, body["page"])
	assert.EqualValues(t, 3, body["pages"])

	data := body["data"].([]any)
	require.Len(t, data, 10)
	first := data[0].(map[string]any)
	// Page 2 of a member_count DESC sort over counts 0..24 starts at 14.
	assert.EqualValues(t, 14, first["member_count"])
}

func TestGetCommunities_Filters(t *testing.T) {
	t.Parallel()
	s, db := setupHandlerTest(t)
	createTestCommunity(t, db, "Reactiflux", 1000, models.ActivityVeryActive)
	slack := createTestCommunity(t, db, "PySlackers", 500, models.ActivityMedium)
	slack.Platform = models.PlatformSlack
	slack.TechStack = "Python"
	require.NoError(t, db.Save(slack).Error)

	app := fiber.New()
	app.Get("/api/communities", s.GetCommunities)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/communities?platform=Slack&tech_stack=python", nil))
	require.NoError(t, err)
	body := decodeBody(t, resp)
	assert.EqualValues(t, 1, body["total"])
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "PySlackers", data[0].(map[string]any)["title"])

	// An unmatched filter yields an empty page, not an error.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet,
		"/api/communities?activity_level=Low", nil))
	require.NoError(t, err)
	body = decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 0, body["total"])
}

func TestGetCommunity_DetailWithRelated(t *testing.T) {
	t.Parallel()
	s, db := setupHandlerTest(t)

	subject := createTestCommunity(t, db, "Reactiflux", 1000, models.ActivityVeryActive)
	subject.TechStack = "React"
	require.NoError(t, db.Save(subject).Error)

	sibling := createTestCommunity(t, db, "Next.js", 500, models.ActivityHigh)
	sibling.TechStack = "React"
	require.NoError(t, db.Save(sibling).Error)

	unrelated := createTestCommunity(t, db, "PySlackers", 400, models.ActivityMedium)
	unrelated.TechStack = "Python"
	unrelated.Tags = models.StringList{"Python"}
	require.NoError(t, db.Save(unrelated).Error)

	app := fiber.New()
	app.Get("/api/communities/:id", s.GetCommunity)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/communities/%d", subject.ID), nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Reactiflux", body["data"].(map[string]any)["title"])

	related := body["related"].([]any)
	require.Len(t, related, 1)
	assert.Equal(t, "Next.js", related[0].(map[string]any)["title"])
}

func TestGetCommunity_NotFound(t *testing.T) {
	t.Parallel()
	s, _ := setupHandlerTest(t)

	app := fiber.New()
	app.Get("/api/communities/:id", s.GetCommunity)

	for _, path := range []string{"/api/communities/9999", "/api/communities/not-a-number"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)

		body := decodeBody(t, resp)
		assert.Equal(t, false, body["success"])
		assert.NotEmpty(t, body["message"])
	}
}

func TestCreateCommunity_LooseInputNormalization(t *testing.T) {
	t.Parallel()
	s, db := setupHandlerTest(t)

	app := fiber.New()
	app.Post("/api/communities", s.CreateCommunity)

	// Tags as a comma-separated string, member_count as a numeric string.
	payload := `{
		"title": "  Indie Hackers  ",
		"description": "Founders forum",
		"tech_stack": "Entrepreneurship",
		"platform": "Forum",
		"location_mode": "Global/Online",
		"tags": " Startups , Bootstrapping ,",
		"joining_link": "https://www.indiehackers.com/sign-up",
		"member_count": "90000"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/communities", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "Indie Hackers", data["title"])
	assert.EqualValues(t, 90000, data["member_count"])
	assert.Equal(t, "Medium", data["activity_level"], "absent activity_level defaults")
	assert.NotZero(t, data["id"])

	var persisted models.Community
	require.NoError(t, db.First(&persisted).Error)
	assert.Equal(t, models.StringList{"Startups", "Bootstrapping"}, persisted.Tags)

	// Array-form tags produce the same stored list.
	payload2 := `{
		"title": "Indie Hackers 2",
		"description": "Founders forum",
		"tech_stack": "Entrepreneurship",
		"platform": "Forum",
		"location_mode": "Global/Online",
		"tags": ["Startups", " Bootstrapping "],
		"joining_link": "https://www.indiehackers.com/sign-up",
		"member_count": 90000
	}`
	req = httptest.NewRequest(http.MethodPost, "/api/communities", bytes.NewReader([]byte(payload2)))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = decodeBody(t, resp)

	var second models.Community
	require.NoError(t, db.Where("title = ?", "Indie Hackers 2").First(&second).Error)
	assert.Equal(t, persisted.Tags, second.Tags)
}

func TestCreateCommunity_ValidationErrors(t *testing.T) {
	t.Parallel()
	s, db := setupHandlerTest(t)

	app := fiber.New()
	app.Post("/api/communities", s.CreateCommunity)

	post := func(payload string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/api/communities", bytes.NewReader([]byte(payload)))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("missing required fields are all named", func(t *testing.T) {
		resp := post(`{"title": "Only a title"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, false, body["success"])
		errs := body["errors"].([]any)
		fields := make([]string, 0, len(errs))
		for _, e := range errs {
			fields = append(fields, e.(map[string]any)["field"].(string))
		}
		assert.ElementsMatch(t, []string{
			"description", "tech_stack", "platform", "location_mode", "joining_link",
		}, fields)
	})

	t.Run("invalid joining link gets a distinct message", func(t *testing.T) {
		resp := post(`{
			"title": "T", "description": "D", "tech_stack": "General",
			"platform": "Discord", "location_mode": "Global/Online",
			"joining_link": "not a url"
		}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Invalid joining link URL format", body["message"])
	})

	t.Run("unknown platform is rejected", func(t *testing.T) {
		resp := post(`{
			"title": "T", "description": "D", "tech_stack": "General",
			"platform": "MySpace", "location_mode": "Global/Online",
			"joining_link": "https://example.com"
		}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeBody(t, resp)
		errs := body["errors"].([]any)
		require.Len(t, errs, 1)
		assert.Equal(t, "platform", errs[0].(map[string]any)["field"])
	})

	t.Run("negative member_count is rejected", func(t *testing.T) {
		resp := post(`{
			"title": "T", "description": "D", "tech_stack": "General",
			"platform": "Discord", "location_mode": "Global/Online",
			"joining_link": "https://example.com", "member_count": -5
		}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid activity_level is coerced, not rejected", func(t *testing.T) {
		resp := post(`{
			"title": "Coerced", "description": "D", "tech_stack": "General",
			"platform": "Discord", "location_mode": "Global/Online",
			"joining_link": "https://example.com", "activity_level": "Extreme"
		}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var c models.Community
		require.NoError(t, db.Where("title = ?", "Coerced").First(&c).Error)
		assert.Equal(t, models.ActivityMedium, c.ActivityLevel)
	})

	// No rejected request may leave a partial record behind.
	var count int64
	require.NoError(t, db.Model(&models.Community{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "only the coerced record should persist")
}

func TestGetFeaturedCommunities(t *testing.T) {
	t.Parallel()
	s, db := setupHandlerTest(t)

	createTestCommunity(t, db, "Small Low", 10, models.ActivityLow)
	createTestCommunity(t, db, "Small Very Active", 10, models.ActivityVeryActive)
	createTestCommunity(t, db, "Small Seasonal", 10, models.ActivityHighSeasonal)
	for i := 0; i < 5; i++ {
		createTestCommunity(t, db, fmt.Sprintf("Big %d", i), 1000+i, models.ActivityMedium)
	}

	app := fiber.New()
	app.Get("/api/communities/featured/list", s.GetFeaturedCommunities)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/communities/featured/list", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.EqualValues(t, 6, body["count"])
	data := body["data"].([]any)
	require.Len(t, data, 6)

	// The five big ones first (member_count DESC), then the best-ranked
	// small one: "Very Active" beats "High (Seasonal)" and "Low".
	assert.Equal(t, "Big 4", data[0].(map[string]any)["title"])
	assert.Equal(t, "Small Very Active", data[5].(map[string]any)["title"])
}
