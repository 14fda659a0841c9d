package services

import (
	"fmt"

	"p2p-volume-tracker/internal/domain/entities"
	"p2p-volume-tracker/internal/infrastructure/config"
)

// PairsFor returns the tracked pairs for a topology, in merge order
func PairsFor(topology string) ([]entities.Pair, error) {
	usdc := []entities.Pair{
		entities.NewPair(entities.ExchangeBinance, entities.AssetUSDC),
		entities.NewPair(entities.ExchangeBybit, entities.AssetUSDC),
		entities.NewPair(entities.ExchangeOKX, entities.AssetUSDC),
		entities.NewPair(entities.ExchangeKuCoin, entities.AssetUSDC),
	}

	switch topology {
	case config.TopologySingle:
		return usdc, nil
	case config.TopologyDual, "":
		return append(usdc,
			entities.NewPair(entities.ExchangeBinance, entities.AssetUSDT),
			entities.NewPair(entities.ExchangeBybit, entities.AssetUSDT),
		), nil
	default:
		return nil, fmt.Errorf("unknown topology: %s", topology)
	}
}

// MergeKeys returns the merged-response keys for pairs, in the same order
func MergeKeys(pairs []entities.Pair) []string {
	multiAsset := isMultiAsset(pairs)
	keys := make([]string, len(pairs))
	for i, p := range pairs {
		keys[i] = p.Key(multiAsset)
	}
	return keys
}

// isMultiAsset reports whether more than one asset is tracked, which switches
// merged keys to the "exchange-asset" form
func isMultiAsset(pairs []entities.Pair) bool {
	if len(pairs) == 0 {
		return false
	}
	first := pairs[0].Asset
	for _, p := range pairs[1:] {
		if p.Asset != first {
			return true
		}
	}
	return false
}
