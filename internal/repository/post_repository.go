package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/club-service/internal/domain"
)

// PostUpdate carries a partial field set for updates. Nil fields stay as-is.
type PostUpdate struct {
	Title   *string
	Content *string
	Slug    *string
	Image   *string
}

// PostRepository encapsulates blog post persistence.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	Update(ctx context.Context, id int64, update PostUpdate) (*domain.Post, error)
	Delete(ctx context.Context, id int64) error
}

type postRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository instantiates repository.
func NewPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postRepository{pool: pool}
}

const postColumns = `id, title, content, slug, image, created_at, updated_at`

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	const query = `
        INSERT INTO posts (title, content, slug, image)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		post.Title,
		post.Content,
		post.Slug,
		post.Image,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id=$1`
	return scanPost(r.pool.QueryRow(ctx, query, id))
}

func (r *postRepository) List(ctx context.Context) ([]domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Post
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Content,
			&post.Slug,
			&post.Image,
			&post.CreatedAt,
			&post.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, post)
	}
	return result, rows.Err()
}

func (r *postRepository) Update(ctx context.Context, id int64, update PostUpdate) (*domain.Post, error) {
	sets := []string{"updated_at=NOW()"}
	args := []any{}

	if update.Title != nil {
		args = append(args, *update.Title)
		sets = append(sets, fmt.Sprintf("title=$%d", len(args)))
	}
	if update.Content != nil {
		args = append(args, *update.Content)
		sets = append(sets, fmt.Sprintf("content=$%d", len(args)))
	}
	if update.Slug != nil {
		args = append(args, *update.Slug)
		sets = append(sets, fmt.Sprintf("slug=$%d", len(args)))
	}
	if update.Image != nil {
		args = append(args, *update.Image)
		sets = append(sets, fmt.Sprintf("image=$%d", len(args)))
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE posts SET %s WHERE id=$%d RETURNING %s",
		strings.Join(sets, ", "), len(args), postColumns)

	return scanPost(r.pool.QueryRow(ctx, query, args...))
}

func (r *postRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var post domain.Post
	if err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.Slug,
		&post.Image,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &post, nil
}
