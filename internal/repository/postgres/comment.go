package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/easytravel/easytravel-server/internal/model"
)

var _ model.CommentStore = (*CommentRepository)(nil)

type CommentRepository struct {
	db *Connection
}

func NewCommentRepository(db *Connection) *CommentRepository {
	return &CommentRepository{db: db}
}

const commentColumns = `id, post_id, owner_id, content, created_at, updated_at`

func scanComment(row pgx.Row) (model.Comment, error) {
	var c model.Comment
	err := row.Scan(&c.ID, &c.PostID, &c.OwnerID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *CommentRepository) Create(ctx context.Context, comment model.Comment) (model.Comment, error) {
	query := `INSERT INTO comments (id, post_id, owner_id, content, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + commentColumns

	saved, err := scanComment(r.db.QueryRow(ctx, query,
		comment.ID, comment.PostID, comment.OwnerID, comment.Content,
		comment.CreatedAt, comment.UpdatedAt,
	))
	if err != nil {
		return model.Comment{}, fmt.Errorf("failed to create comment: %w", err)
	}
	return saved, nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	comment, err := scanComment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Comment{}, model.ErrNotFound
		}
		return model.Comment{}, fmt.Errorf("failed to get comment by id: %w", err)
	}
	return comment, nil
}

func (r *CommentRepository) GetByPostID(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE post_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments by post id: %w", err)
	}
	defer rows.Close()

	comments := make([]model.Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read comments: %w", err)
	}
	return comments, nil
}

func (r *CommentRepository) Update(ctx context.Context, id uuid.UUID, content string) (model.Comment, error) {
	query := `UPDATE comments SET content = $2, updated_at = NOW() WHERE id = $1 RETURNING ` + commentColumns

	comment, err := scanComment(r.db.QueryRow(ctx, query, id, content))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Comment{}, model.ErrNotFound
		}
		return model.Comment{}, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *CommentRepository) CountByPostID(ctx context.Context, postID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return count, nil
}
