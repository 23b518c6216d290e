package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/sync/errgroup"

	"blog_nest/internal/common"
	"blog_nest/internal/domain/model"
	"blog_nest/internal/domain/repository"
)

const (
	msgTitleLength       = "Blog title must contain at least 3 characters"
	msgTitleTaken        = "This title is already in use"
	msgDescriptionLength = "Blog description must contain at least 5 characters"
	msgContentLength     = "Blog content must contain at least 5 characters"
)

type BlogService struct {
	blogs    repository.BlogRepository
	comments repository.CommentRepository
}

func NewBlogService(blogs repository.BlogRepository, comments repository.CommentRepository) *BlogService {
	return &BlogService{blogs: blogs, comments: comments}
}

type BlogInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

type BlogDetails struct {
	Blog     *model.Blog     `json:"blog"`
	Comments []model.Comment `json:"comments"`
}

func (in *BlogInput) trim() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Content = strings.TrimSpace(in.Content)
}

func validateBlogInput(in BlogInput) common.ValidationErrors {
	var verrs common.ValidationErrors
	if err := validation.Validate(in.Title,
		validation.Required.Error(msgTitleLength),
		validation.RuneLength(3, 0).Error(msgTitleLength),
	); err != nil {
		verrs = append(verrs, common.FieldError{Field: "title", Message: msgTitleLength})
	}
	if err := validation.Validate(in.Description,
		validation.Required.Error(msgDescriptionLength),
		validation.RuneLength(5, 0).Error(msgDescriptionLength),
	); err != nil {
		verrs = append(verrs, common.FieldError{Field: "description", Message: msgDescriptionLength})
	}
	if err := validation.Validate(in.Content,
		validation.Required.Error(msgContentLength),
		validation.RuneLength(5, 0).Error(msgContentLength),
	); err != nil {
		verrs = append(verrs, common.FieldError{Field: "content", Message: msgContentLength})
	}
	return verrs
}

// Create validates all fields (title uniqueness included), aggregates the
// failures, and stores the blog unpublished.
func (s *BlogService) Create(ctx context.Context, in BlogInput) error {
	in.trim()
	verrs := validateBlogInput(in)

	if in.Title != "" {
		_, err := s.blogs.FindByTitle(ctx, in.Title)
		switch {
		case err == nil:
			verrs = append(verrs, common.FieldError{Field: "title", Message: msgTitleTaken})
		case !errors.Is(err, common.ErrNotFound):
			return fmt.Errorf("title lookup failed: %w", err)
		}
	}
	if len(verrs) > 0 {
		return verrs
	}

	blog := &model.Blog{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Slug:        slug.Make(in.Title),
		Description: in.Description,
		Content:     in.Content,
		Published:   false,
	}
	if err := s.blogs.Create(ctx, blog); err != nil {
		if errors.Is(err, common.ErrDuplicateTitle) {
			return common.ValidationErrors{{Field: "title", Message: msgTitleTaken}}
		}
		return fmt.Errorf("failed to create blog: %w", err)
	}
	return nil
}

func (s *BlogService) ListPublished(ctx context.Context) ([]model.Blog, error) {
	blogs, err := s.blogs.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list published blogs: %w", err)
	}
	if len(blogs) == 0 {
		return nil, common.NotFound("No published blogs found")
	}
	return blogs, nil
}

func (s *BlogService) ListAll(ctx context.Context) ([]model.Blog, error) {
	blogs, err := s.blogs.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	if len(blogs) == 0 {
		return nil, common.NotFound("No blogs found")
	}
	return blogs, nil
}

// GetDetails fetches a blog and its comments concurrently.
func (s *BlogService) GetDetails(ctx context.Context, id string) (*BlogDetails, error) {
	var (
		blog     *model.Blog
		comments []model.Comment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		blog, err = s.blogs.FindByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = s.comments.ListByBlog(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("Blog not found")
		}
		return nil, fmt.Errorf("failed to load blog details: %w", err)
	}

	return &BlogDetails{Blog: blog, Comments: comments}, nil
}

// Update replaces title, description and content; the published state is
// preserved.
func (s *BlogService) Update(ctx context.Context, id string, in BlogInput) (string, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.NotFound("Blog not found")
		}
		return "", fmt.Errorf("failed to find blog: %w", err)
	}

	in.trim()
	if verrs := validateBlogInput(in); len(verrs) > 0 {
		return "", verrs
	}

	blog.Title = in.Title
	blog.Slug = slug.Make(in.Title)
	blog.Description = in.Description
	blog.Content = in.Content

	if err := s.blogs.Update(ctx, blog); err != nil {
		if errors.Is(err, common.ErrDuplicateTitle) {
			return "", common.ValidationErrors{{Field: "title", Message: msgTitleTaken}}
		}
		return "", fmt.Errorf("failed to update blog: %w", err)
	}
	return blog.Title, nil
}

// TogglePublish flips the published flag.
func (s *BlogService) TogglePublish(ctx context.Context, id string) (string, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.NotFound("Blog not found")
		}
		return "", fmt.Errorf("failed to find blog: %w", err)
	}

	blog.Published = !blog.Published
	if err := s.blogs.Update(ctx, blog); err != nil {
		return "", fmt.Errorf("failed to update blog: %w", err)
	}
	return blog.Title, nil
}
