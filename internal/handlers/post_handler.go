package handlers

import (
	"errors"
	"strconv"

	"github.com/brainlink-app/brainlink-backend/internal/dto"
	"github.com/brainlink-app/brainlink-backend/internal/middleware"
	"github.com/brainlink-app/brainlink-backend/internal/models"
	"github.com/brainlink-app/brainlink-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PostHandler struct {
	postService *services.PostService
}

func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func postResponse(p *models.Post) dto.PostResponse {
	resp := dto.PostResponse{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		ContentKind: p.ContentKind,
		LikeCount:   p.LikeCount,
		IsFeatured:  p.IsFeatured,
		CreatedAt:   p.CreatedAt,
	}
	if p.Author != nil {
		resp.AuthorUsername = p.Author.Username
	}
	return resp
}

// Create handles POST /posts.
func (h *PostHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	post, err := h.postService.Create(userID, req.Title, req.Content, req.ContentKind)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPost), errors.Is(err, services.ErrInvalidPostKind):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create post",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(postResponse(post))
}

// Get handles GET /posts/:id.
func (h *PostHandler) Get(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid post ID",
		})
	}

	post, err := h.postService.Get(postID)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Post not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch post",
		})
	}

	return c.JSON(postResponse(post))
}

// List handles GET /posts?page=&limit=.
func (h *PostHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	posts, total, err := h.postService.List(page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch posts",
		})
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, postResponse(&posts[i]))
	}

	return c.JSON(dto.PostListResponse{
		Posts: responses,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Like handles POST /posts/:id/like.
func (h *PostHandler) Like(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid post ID",
		})
	}

	if err := h.postService.Like(userID, postID); err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Post not found",
			})
		case errors.Is(err, services.ErrAlreadyLiked):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: "Post already liked",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to like post",
		})
	}

	return c.JSON(fiber.Map{"message": "Post liked"})
}

// Unlike handles DELETE /posts/:id/like.
func (h *PostHandler) Unlike(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid post ID",
		})
	}

	if err := h.postService.Unlike(userID, postID); err != nil {
		if errors.Is(err, services.ErrLikeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Like not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to unlike post",
		})
	}

	return c.JSON(fiber.Map{"message": "Like removed"})
}

// Comment handles POST /posts/:id/comments.
func (h *PostHandler) Comment(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid post ID",
		})
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	comment, err := h.postService.Comment(userID, postID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Post not found",
			})
		case errors.Is(err, services.ErrEmptyComment):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Comment cannot be empty",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create comment",
		})
	}

	resp := dto.CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	if comment.User != nil {
		resp.Username = comment.User.Username
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListComments handles GET /posts/:id/comments.
func (h *PostHandler) ListComments(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid post ID",
		})
	}

	comments, err := h.postService.ListComments(postID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch comments",
		})
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		resp := dto.CommentResponse{
			ID:        comments[i].ID,
			Content:   comments[i].Content,
			CreatedAt: comments[i].CreatedAt,
		}
		if comments[i].User != nil {
			resp.Username = comments[i].User.Username
		}
		responses = append(responses, resp)
	}

	return c.JSON(fiber.Map{"comments": responses})
}
