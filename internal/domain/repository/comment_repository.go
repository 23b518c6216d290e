package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blog_nest/internal/common"
	"blog_nest/internal/domain/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id string) (*model.Comment, error)
	ListByBlog(ctx context.Context, blogID string) ([]model.Comment, error)
	Delete(ctx context.Context, id string) error
}

type pgCommentRepository struct {
	db *sql.DB
}

func NewPgCommentRepository(db *sql.DB) CommentRepository {
	return &pgCommentRepository{db: db}
}

func (r *pgCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	query := `INSERT INTO comments (id, blog_id, user_id, content) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, comment.ID, comment.BlogID, comment.UserID, comment.Content)
	if err != nil {
		return fmt.Errorf("pgCommentRepository.Create: %w", err)
	}
	return nil
}

func (r *pgCommentRepository) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	query := `SELECT id, blog_id, user_id, content, created_at FROM comments WHERE id = $1`
	comment := &model.Comment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.BlogID, &comment.UserID, &comment.Content, &comment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCommentRepository.FindByID: %w", err)
	}
	return comment, nil
}

// ListByBlog returns a blog's comments oldest first, with the commenter's
// username joined in.
func (r *pgCommentRepository) ListByBlog(ctx context.Context, blogID string) ([]model.Comment, error) {
	query := `SELECT c.id, c.blog_id, c.user_id, u.username, c.content, c.created_at
	          FROM comments c JOIN users u ON u.id = c.user_id
	          WHERE c.blog_id = $1 ORDER BY c.created_at`
	rows, err := r.db.QueryContext(ctx, query, blogID)
	if err != nil {
		return nil, fmt.Errorf("pgCommentRepository.ListByBlog: %w", err)
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var comment model.Comment
		if err := rows.Scan(
			&comment.ID, &comment.BlogID, &comment.UserID, &comment.Username,
			&comment.Content, &comment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgCommentRepository.ListByBlog: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgCommentRepository.ListByBlog: %w", err)
	}
	return comments, nil
}

func (r *pgCommentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgCommentRepository.Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgCommentRepository.Delete: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
