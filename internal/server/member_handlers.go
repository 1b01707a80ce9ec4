package server

import (
	"errors"

	"devcomm/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// communityExists writes a 404 response and returns errResponseWritten when
// the community is missing, so relationship handlers never create dangling
// membership rows.
func (s *Server) communityExists(c *fiber.Ctx, id uint) error {
	_, err := s.communityRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Community", id))
			return errResponseWritten
		}
		_ = models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
		return errResponseWritten
	}
	return nil
}

// JoinCommunity handles POST /api/users/me/communities/:id/join
func (s *Server) JoinCommunity(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.communityExists(c, id); err != nil {
		return nil
	}

	// Joining twice is a no-op, not an error.
	if err := s.memberRepo.Join(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Community joined",
	})
}

// LeaveCommunity handles DELETE /api/users/me/communities/:id/join
func (s *Server) LeaveCommunity(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.memberRepo.Leave(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Community left",
	})
}

// SaveCommunity handles POST /api/users/me/communities/:id/save
func (s *Server) SaveCommunity(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.communityExists(c, id); err != nil {
		return nil
	}

	if err := s.memberRepo.Save(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Community saved",
	})
}

// UnsaveCommunity handles DELETE /api/users/me/communities/:id/save
func (s *Server) UnsaveCommunity(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.memberRepo.Unsave(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Community unsaved",
	})
}

// GetMyCommunities handles GET /api/users/me/communities
func (s *Server) GetMyCommunities(c *fiber.Ctx) error {
	mine, err := s.memberRepo.ForUser(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	saved := make([]*models.Community, 0, len(mine.Saved))
	for _, s := range mine.Saved {
		if s.Community != nil {
			saved = append(saved, s.Community)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"joined": mine.Joined,
			"saved":  saved,
		},
	})
}
