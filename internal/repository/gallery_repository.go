package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/club-service/internal/domain"
)

// GalleryUpdate carries a partial field set for updates.
type GalleryUpdate struct {
	ImageURL     *string
	Caption      *string
	Link         *string
	DisplayOrder *int
}

// GalleryRepository encapsulates gallery item persistence.
type GalleryRepository interface {
	Create(ctx context.Context, item *domain.GalleryItem) error
	GetByID(ctx context.Context, id int64) (*domain.GalleryItem, error)
	List(ctx context.Context) ([]domain.GalleryItem, error)
	Update(ctx context.Context, id int64, update GalleryUpdate) (*domain.GalleryItem, error)
	Delete(ctx context.Context, id int64) error
}

type galleryRepository struct {
	pool *pgxpool.Pool
}

// NewGalleryRepository instantiates repository.
func NewGalleryRepository(pool *pgxpool.Pool) GalleryRepository {
	return &galleryRepository{pool: pool}
}

const galleryColumns = `id, image_url, caption, link, display_order, created_at`

func (r *galleryRepository) Create(ctx context.Context, item *domain.GalleryItem) error {
	const query = `
        INSERT INTO gallery_items (image_url, caption, link, display_order)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		item.ImageURL,
		item.Caption,
		item.Link,
		item.DisplayOrder,
	).Scan(&item.ID, &item.CreatedAt)
}

func (r *galleryRepository) GetByID(ctx context.Context, id int64) (*domain.GalleryItem, error) {
	query := `SELECT ` + galleryColumns + ` FROM gallery_items WHERE id=$1`
	return scanGalleryItem(r.pool.QueryRow(ctx, query, id))
}

func (r *galleryRepository) List(ctx context.Context) ([]domain.GalleryItem, error) {
	query := `SELECT ` + galleryColumns + ` FROM gallery_items ORDER BY display_order ASC, created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.GalleryItem
	for rows.Next() {
		var item domain.GalleryItem
		if err := rows.Scan(
			&item.ID,
			&item.ImageURL,
			&item.Caption,
			&item.Link,
			&item.DisplayOrder,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *galleryRepository) Update(ctx context.Context, id int64, update GalleryUpdate) (*domain.GalleryItem, error) {
	sets := []string{}
	args := []any{}

	if update.ImageURL != nil {
		args = append(args, *update.ImageURL)
		sets = append(sets, fmt.Sprintf("image_url=$%d", len(args)))
	}
	if update.Caption != nil {
		args = append(args, *update.Caption)
		sets = append(sets, fmt.Sprintf("caption=$%d", len(args)))
	}
	if update.Link != nil {
		args = append(args, *update.Link)
		sets = append(sets, fmt.Sprintf("link=$%d", len(args)))
	}
	if update.DisplayOrder != nil {
		args = append(args, *update.DisplayOrder)
		sets = append(sets, fmt.Sprintf("display_order=$%d", len(args)))
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE gallery_items SET %s WHERE id=$%d RETURNING %s",
		strings.Join(sets, ", "), len(args), galleryColumns)

	return scanGalleryItem(r.pool.QueryRow(ctx, query, args...))
}

func (r *galleryRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM gallery_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanGalleryItem(row pgx.Row) (*domain.GalleryItem, error) {
	var item domain.GalleryItem
	if err := row.Scan(
		&item.ID,
		&item.ImageURL,
		&item.Caption,
		&item.Link,
		&item.DisplayOrder,
		&item.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}
