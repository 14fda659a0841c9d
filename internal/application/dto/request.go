package dto

import (
	"fmt"
	"strings"

	"p2p-volume-tracker/internal/domain/entities"
)

// LegacyAssetSlug is the route suffix the original per-exchange endpoints used for USDC
const LegacyAssetSlug = "p2p"

// PairRequest representa el par pedido en una ruta /api/{exchange}-{asset}
type PairRequest struct {
	Pair entities.Pair
}

// NewPairRequest valida los path params y los convierte en un Pair
func NewPairRequest(exchange, assetSlug string) (*PairRequest, error) {
	id, err := entities.ParseExchangeID(exchange)
	if err != nil {
		return nil, err
	}

	slug := strings.ToLower(strings.TrimSpace(assetSlug))
	if slug == LegacyAssetSlug {
		return &PairRequest{Pair: entities.NewPair(id, entities.DefaultAsset)}, nil
	}

	asset, err := entities.ParseAsset(slug)
	if err != nil {
		return nil, fmt.Errorf("invalid route %s-%s: %w", exchange, assetSlug, err)
	}

	return &PairRequest{Pair: entities.NewPair(id, asset)}, nil
}
