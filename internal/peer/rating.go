package peer

import (
	"context"
	"time"

	"booking-service/internal/cache"
	"booking-service/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RatingClient interface {
	Get(ctx context.Context, userID uuid.UUID) (entity.Rating, error)
}

type ratingClient struct {
	http  httpClient
	cache *cache.Cache
	Log   *zap.Logger
}

func NewRatingClient(baseURL, secret string, timeout time.Duration, c *cache.Cache, log *zap.Logger) RatingClient {
	return &ratingClient{
		http:  newHTTPClient(baseURL, secret, timeout),
		cache: c,
		Log:   log.With(zap.String("client", "rating")),
	}
}

type ratingReply struct {
	ScoreAverage float64 `json:"score_average"`
}

func (c *ratingClient) Get(ctx context.Context, userID uuid.UUID) (entity.Rating, error) {
	return cache.GetOrFetch(ctx, c.cache, "rating:"+userID.String(), func(ctx context.Context) (entity.Rating, error) {
		var reply ratingReply
		if err := c.http.post(ctx, "/rating/"+userID.String(), nil, &reply); err != nil {
			return entity.Rating{}, err
		}
		return entity.Rating{Score: reply.ScoreAverage}, nil
	})
}
