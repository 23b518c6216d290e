package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"

	"blog_nest/internal/common"
	"blog_nest/internal/domain/model"
	"blog_nest/internal/domain/repository"
)

const msgCommentLength = "Comment must contain at least 3 characters"

type CommentService struct {
	comments repository.CommentRepository
	blogs    repository.BlogRepository
	users    repository.UserRepository
}

func NewCommentService(
	comments repository.CommentRepository,
	blogs repository.BlogRepository,
	users repository.UserRepository,
) *CommentService {
	return &CommentService{comments: comments, blogs: blogs, users: users}
}

type CommentInput struct {
	Content string `json:"content"`
}

// Create stores a comment for the authenticated username. The credential
// record is re-read so a deactivated account cannot comment even while its
// access token is still valid.
func (s *CommentService) Create(ctx context.Context, username, blogID string, in CommentInput) error {
	in.Content = strings.TrimSpace(in.Content)
	if err := validation.Validate(in.Content,
		validation.Required.Error(msgCommentLength),
		validation.RuneLength(3, 0).Error(msgCommentLength),
	); err != nil {
		return common.ValidationErrors{{Field: "content", Message: msgCommentLength}}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrUnauthorized
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	if !user.Active {
		return common.ErrUnauthorized
	}

	if _, err := s.blogs.FindByID(ctx, blogID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NotFound("Blog not found")
		}
		return fmt.Errorf("failed to find blog: %w", err)
	}

	comment := &model.Comment{
		ID:      uuid.NewString(),
		BlogID:  blogID,
		UserID:  user.ID,
		Content: in.Content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (s *CommentService) Delete(ctx context.Context, id string) error {
	if _, err := s.comments.FindByID(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NotFound("Comment not found")
		}
		return fmt.Errorf("failed to find comment: %w", err)
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
