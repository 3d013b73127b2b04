package periods

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/pickpool/go/internal/models"
)

type contextKey struct{}

// Current is the season and period resolved for a request. Either may be nil.
type Current struct {
	Season *models.Season
	Period *models.Period
}

// Middleware reconciles the active period on every request and stores the
// result in the request context.
func Middleware(app *App) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			var current Current

			season, err := app.CurrentSeason(ctx)
			if err != nil && !errors.Is(err, ErrNoActiveSeason) {
				log.Error().Err(err).Msg("failed to resolve current season")
			}
			current.Season = season

			period, err := app.CurrentPeriod(ctx)
			if err != nil && !errors.Is(err, ErrNoCurrentPeriod) {
				log.Error().Err(err).Msg("failed to resolve current period")
			}
			current.Period = period

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, contextKey{}, current)))
		})
	}
}

// FromContext returns what Middleware stored.
func FromContext(ctx context.Context) (Current, bool) {
	c, ok := ctx.Value(contextKey{}).(Current)
	return c, ok
}
