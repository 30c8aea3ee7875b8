package handlers

import (
	"time"

	"github.com/brainlink-app/brainlink-backend/internal/dto"
	"github.com/brainlink-app/brainlink-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// Stats handles GET /admin/stats.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	var stats dto.AdminStatsResponse

	weekAgo := time.Now().AddDate(0, 0, -7)
	counts := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{h.db.Model(&models.User{}), &stats.TotalUsers},
		{h.db.Model(&models.User{}).Where("created_at >= ?", weekAgo), &stats.NewUsers7d},
		{h.db.Model(&models.Post{}), &stats.TotalPosts},
		{h.db.Model(&models.Connection{}), &stats.TotalConnections},
		{h.db.Model(&models.Message{}), &stats.TotalMessages},
	}
	for _, cq := range counts {
		if err := cq.query.Count(cq.dest).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to compute stats",
			})
		}
	}

	return c.JSON(stats)
}
