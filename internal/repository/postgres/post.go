package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/easytravel/easytravel-server/internal/model"
)

var _ model.PostStore = (*PostRepository)(nil)

type PostRepository struct {
	db *Connection
}

func NewPostRepository(db *Connection) *PostRepository {
	return &PostRepository{db: db}
}

const postColumns = `posts.id, posts.owner_id, posts.title, posts.content, posts.location, posts.rating,
	posts.images, posts.likes,
	(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id),
	posts.created_at, posts.updated_at`

func scanPost(row pgx.Row) (model.Post, error) {
	var post model.Post
	err := row.Scan(
		&post.ID, &post.OwnerID, &post.Title, &post.Content, &post.Location,
		&post.Rating, &post.Images, &post.Likes, &post.CommentsCount,
		&post.CreatedAt, &post.UpdatedAt,
	)
	return post, err
}

func (r *PostRepository) Create(ctx context.Context, post model.Post) (model.Post, error) {
	query := `INSERT INTO posts (id, owner_id, title, content, location, rating, images, likes, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING ` + postColumns

	saved, err := scanPost(r.db.QueryRow(ctx, query,
		post.ID, post.OwnerID, post.Title, post.Content, post.Location,
		post.Rating, post.Images, post.Likes, post.CreatedAt, post.UpdatedAt,
	))
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to create post: %w", err)
	}
	return saved, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE posts.id = $1`

	post, err := scanPost(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, model.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("failed to get post by id: %w", err)
	}
	return post, nil
}

func (r *PostRepository) GetAll(ctx context.Context) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY posts.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

func (r *PostRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE posts.owner_id = $1 ORDER BY posts.created_at DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts by owner id: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

func (r *PostRepository) Update(ctx context.Context, post model.Post) (model.Post, error) {
	query := `UPDATE posts SET title = $2, content = $3, location = $4, rating = $5, images = $6, updated_at = NOW()
			  WHERE posts.id = $1
			  RETURNING ` + postColumns

	updated, err := scanPost(r.db.QueryRow(ctx, query,
		post.ID, post.Title, post.Content, post.Location, post.Rating, post.Images,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, model.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("failed to update post: %w", err)
	}
	return updated, nil
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *PostRepository) SetLikes(ctx context.Context, id uuid.UUID, likes []uuid.UUID) (model.Post, error) {
	query := `UPDATE posts SET likes = $2, updated_at = NOW()
			  WHERE posts.id = $1
			  RETURNING ` + postColumns

	if likes == nil {
		likes = []uuid.UUID{}
	}

	post, err := scanPost(r.db.QueryRow(ctx, query, id, likes))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, model.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("failed to set post likes: %w", err)
	}
	return post, nil
}

func collectPosts(rows pgx.Rows) ([]model.Post, error) {
	posts := make([]model.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}
	return posts, nil
}
