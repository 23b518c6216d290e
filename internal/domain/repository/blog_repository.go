package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"blog_nest/internal/common"
	"blog_nest/internal/domain/model"
)

type BlogRepository interface {
	Create(ctx context.Context, blog *model.Blog) error
	FindByID(ctx context.Context, id string) (*model.Blog, error)
	FindByTitle(ctx context.Context, title string) (*model.Blog, error)
	ListPublished(ctx context.Context) ([]model.Blog, error)
	ListAll(ctx context.Context) ([]model.Blog, error)
	Update(ctx context.Context, blog *model.Blog) error
}

type pgBlogRepository struct {
	db *sql.DB
}

func NewPgBlogRepository(db *sql.DB) BlogRepository {
	return &pgBlogRepository{db: db}
}

func (r *pgBlogRepository) Create(ctx context.Context, blog *model.Blog) error {
	query := `INSERT INTO blogs (id, title, slug, description, content, published)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, blog.ID, blog.Title, blog.Slug, blog.Description, blog.Content, blog.Published)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return common.ErrDuplicateTitle
		}
		return fmt.Errorf("pgBlogRepository.Create: %w", err)
	}
	return nil
}

func (r *pgBlogRepository) FindByID(ctx context.Context, id string) (*model.Blog, error) {
	query := `SELECT id, title, slug, description, content, published, created_at, updated_at
	          FROM blogs WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), "FindByID")
}

func (r *pgBlogRepository) FindByTitle(ctx context.Context, title string) (*model.Blog, error) {
	query := `SELECT id, title, slug, description, content, published, created_at, updated_at
	          FROM blogs WHERE title = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, title), "FindByTitle")
}

func (r *pgBlogRepository) scanOne(row *sql.Row, op string) (*model.Blog, error) {
	blog := &model.Blog{}
	err := row.Scan(
		&blog.ID, &blog.Title, &blog.Slug, &blog.Description, &blog.Content,
		&blog.Published, &blog.CreatedAt, &blog.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgBlogRepository.%s: %w", op, err)
	}
	return blog, nil
}

// ListPublished returns published blogs newest first, without their content.
func (r *pgBlogRepository) ListPublished(ctx context.Context) ([]model.Blog, error) {
	query := `SELECT id, title, slug, description, published, created_at, updated_at
	          FROM blogs WHERE published ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgBlogRepository.ListPublished: %w", err)
	}
	defer rows.Close()

	var blogs []model.Blog
	for rows.Next() {
		var blog model.Blog
		if err := rows.Scan(
			&blog.ID, &blog.Title, &blog.Slug, &blog.Description,
			&blog.Published, &blog.CreatedAt, &blog.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgBlogRepository.ListPublished: %w", err)
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgBlogRepository.ListPublished: %w", err)
	}
	return blogs, nil
}

func (r *pgBlogRepository) ListAll(ctx context.Context) ([]model.Blog, error) {
	query := `SELECT id, title, slug, description, content, published, created_at, updated_at
	          FROM blogs ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgBlogRepository.ListAll: %w", err)
	}
	defer rows.Close()

	var blogs []model.Blog
	for rows.Next() {
		var blog model.Blog
		if err := rows.Scan(
			&blog.ID, &blog.Title, &blog.Slug, &blog.Description, &blog.Content,
			&blog.Published, &blog.CreatedAt, &blog.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgBlogRepository.ListAll: %w", err)
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgBlogRepository.ListAll: %w", err)
	}
	return blogs, nil
}

func (r *pgBlogRepository) Update(ctx context.Context, blog *model.Blog) error {
	query := `UPDATE blogs SET title = $2, slug = $3, description = $4, content = $5,
	          published = $6, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, blog.ID, blog.Title, blog.Slug, blog.Description, blog.Content, blog.Published)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return common.ErrDuplicateTitle
		}
		return fmt.Errorf("pgBlogRepository.Update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgBlogRepository.Update: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
