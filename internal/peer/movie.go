package peer

import (
	"context"
	"time"

	"booking-service/internal/cache"
	"booking-service/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieClient interface {
	Get(ctx context.Context, id uuid.UUID) (entity.Movie, error)
}

type movieClient struct {
	http  httpClient
	cache *cache.Cache
	debug bool
	Log   *zap.Logger
}

func NewMovieClient(baseURL, secret string, timeout time.Duration, c *cache.Cache, debug bool, log *zap.Logger) MovieClient {
	return &movieClient{
		http:  newHTTPClient(baseURL, secret, timeout),
		cache: c,
		debug: debug,
		Log:   log.With(zap.String("client", "movie")),
	}
}

type movieReply struct {
	Title    string `json:"title"`
	Duration int    `json:"duration"`
}

func (c *movieClient) Get(ctx context.Context, id uuid.UUID) (entity.Movie, error) {
	return cache.GetOrFetch(ctx, c.cache, "movie:"+id.String(), func(ctx context.Context) (entity.Movie, error) {
		var reply movieReply
		if err := c.http.post(ctx, "/movie/"+id.String(), nil, &reply); err != nil {
			return entity.Movie{}, err
		}
		c.Log.Debug("Fetched movie", zap.String("movie_id", id.String()))

		duration := reply.Duration
		if c.debug {
			duration = 0
		}
		return entity.Movie{ID: id, Title: reply.Title, Duration: duration}, nil
	})
}
