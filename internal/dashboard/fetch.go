package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/smokyabdulrahman/salat-clock/internal/api"
	"github.com/smokyabdulrahman/salat-clock/internal/prayer"
)

// Fetcher retrieves one day's timings for a city.
type Fetcher interface {
	FetchByCity(ctx context.Context, date time.Time, city, country string, method int) (*api.Response, error)
}

// Fetch performs req with the fixed calculation method. Every failure is
// returned in Result.Err wrapping one of the api error classes.
func Fetch(ctx context.Context, f Fetcher, req Request, arabic bool, log zerolog.Logger) Result {
	log = log.With().
		Str("request_id", req.ID).
		Uint64("gen", req.Gen).
		Str("city", req.City.Name).
		Logger()
	log.Debug().Msg("fetching prayer times")

	res := Result{Request: req}

	resp, err := f.FetchByCity(ctx, req.Date, req.City.Name, req.City.Country, api.CalculationMethod)
	if err != nil {
		log.Error().Err(err).Msg("fetch failed")
		res.Err = err
		return res
	}

	timings, err := prayer.FromAPI(resp.Data.Timings)
	if err != nil {
		log.Error().Err(err).Msg("unusable timings in response")
		res.Err = fmt.Errorf("%w: %v", api.ErrMalformed, err)
		return res
	}

	res.Timings = timings
	res.Hijri = resp.Data.Date.Hijri.Format(arabic)
	log.Info().Str("fajr", timings[0]).Str("isha", timings[4]).Msg("prayer times loaded")
	return res
}
