package news

import "context"

// Repository defines persistence operations for cached news articles.
type Repository interface {
	Create(ctx context.Context, a *Article) error
	ExistsByURL(ctx context.Context, url string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*Article, int, error)
}
