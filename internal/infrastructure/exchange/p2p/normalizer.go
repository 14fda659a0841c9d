package p2p

import (
	"fmt"
	"math"
	"time"

	"p2p-volume-tracker/internal/domain/entities"
)

// Normalize reduces a raw reply into canonical metrics. A reply with no
// listings yields the descriptor's EmptyKind instead of a zero-valued record.
func Normalize(d Descriptor, raw []byte, now time.Time) (*entities.ExchangeMetrics, error) {
	listings, err := d.Decode(raw)
	if err != nil {
		return nil, err
	}
	return Reduce(d.Exchange, d.EmptyKind, listings, now)
}

// Reduce sums quantities and averages prices across listings
func Reduce(exchange entities.ExchangeID, emptyKind error, listings []Listing, now time.Time) (*entities.ExchangeMetrics, error) {
	if len(listings) == 0 {
		if emptyKind == nil {
			emptyKind = entities.ErrProviderEmptyResult
		}
		return nil, fmt.Errorf("%w: no listings in %s reply", emptyKind, exchange)
	}

	var volume, priceSum float64
	for _, l := range listings {
		volume += l.Quantity
		priceSum += l.Price
	}

	avgPrice := priceSum / float64(len(listings))
	if !isFinite(volume) || !isFinite(avgPrice) {
		return nil, fmt.Errorf("%w: %s totals overflow (volume=%v avgPrice=%v)",
			entities.ErrUpstreamSchemaMismatch, exchange, volume, avgPrice)
	}

	return entities.NewExchangeMetrics(
		exchange,
		volume,
		len(listings),
		avgPrice,
		now.UTC(),
	), nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
