package news

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const articleCols = `id, title, description, url, image_url, source, published_at, fetched_at`

func (r *repoPG) scanArticle(row pgx.Row) (*Article, error) {
	var a Article
	err := row.Scan(&a.ID, &a.Title, &a.Description, &a.URL, &a.ImageURL,
		&a.Source, &a.PublishedAt, &a.FetchedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create relies on the unique index on url: a concurrent duplicate insert is
// dropped rather than failed.
func (r *repoPG) Create(ctx context.Context, a *Article) error {
	a.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO article (id, title, description, url, image_url, source, published_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (url) DO NOTHING`,
		a.ID, a.Title, a.Description, a.URL, a.ImageURL, a.Source, a.PublishedAt)
	return err
}

func (r *repoPG) ExistsByURL(ctx context.Context, url string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM article WHERE url = $1)`, url).Scan(&exists)
	return exists, err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Article, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM article`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+articleCols+` FROM article
		ORDER BY published_at DESC NULLS LAST, fetched_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Article
	for rows.Next() {
		a, err := r.scanArticle(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}
