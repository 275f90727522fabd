package peer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"booking-service/internal/cache"
	"booking-service/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserClient merges the auth service profile with the UGC subscriber list.
type UserClient interface {
	Get(ctx context.Context, id uuid.UUID) (entity.UserProfile, error)
}

type userClient struct {
	auth  httpClient
	ugc   httpClient
	cache *cache.Cache
	Log   *zap.Logger
}

func NewUserClient(authURL, ugcURL, secret string, timeout time.Duration, c *cache.Cache, log *zap.Logger) UserClient {
	return &userClient{
		auth:  newHTTPClient(authURL, secret, timeout),
		ugc:   newHTTPClient(ugcURL, secret, timeout),
		cache: c,
		Log:   log.With(zap.String("client", "user")),
	}
}

type userInfoReply struct {
	Name     string `json:"name"`
	LastName string `json:"last_name"`
}

func (c *userClient) Get(ctx context.Context, id uuid.UUID) (entity.UserProfile, error) {
	return cache.GetOrFetch(ctx, c.cache, "user:"+id.String(), func(ctx context.Context) (entity.UserProfile, error) {
		var info userInfoReply
		if err := c.auth.post(ctx, "/user_info/"+id.String(), nil, &info); err != nil {
			return entity.UserProfile{}, fmt.Errorf("get user info %s: %w", id, err)
		}

		var subs []uuid.UUID
		if err := c.ugc.post(ctx, "/subscribers/"+id.String(), nil, &subs); err != nil {
			return entity.UserProfile{}, fmt.Errorf("get subscribers %s: %w", id, err)
		}
		c.Log.Debug("Fetched user", zap.String("user_id", id.String()), zap.Int("subs", len(subs)))

		return entity.UserProfile{
			ID:          id,
			Name:        strings.TrimSpace(info.Name + " " + info.LastName),
			Subscribers: subs,
		}, nil
	})
}
