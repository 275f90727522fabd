package peer

import (
	"booking-service/internal/cache"
	"booking-service/pkg/utils"

	"go.uber.org/zap"
)

// Clients bundles the lookups the services make against neighbouring services.
type Clients struct {
	Movie  MovieClient
	User   UserClient
	Rating RatingClient
}

func NewClients(config *utils.Config, c *cache.Cache, log *zap.Logger) Clients {
	p := config.Peers
	secret := config.JWT.Secret
	return Clients{
		Movie:  NewMovieClient(p.MovieURL, secret, p.Timeout, c, config.App.Debug, log),
		User:   NewUserClient(p.AuthURL, p.UGCURL, secret, p.Timeout, c, log),
		Rating: NewRatingClient(p.RatingURL, secret, p.Timeout, c, log),
	}
}
