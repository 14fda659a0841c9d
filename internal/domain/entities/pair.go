package entities

import (
	"fmt"
	"strings"
)

// ExchangeID is the canonical lowercase provider identifier
type ExchangeID string

const (
	ExchangeBinance ExchangeID = "binance"
	ExchangeBybit   ExchangeID = "bybit"
	ExchangeOKX     ExchangeID = "okx"
	ExchangeKuCoin  ExchangeID = "kucoin"
)

var displayNames = map[ExchangeID]string{
	ExchangeBinance: "Binance",
	ExchangeBybit:   "Bybit",
	ExchangeOKX:     "OKX",
	ExchangeKuCoin:  "KuCoin",
}

// DisplayName returns the human-readable exchange name used in messages
func (e ExchangeID) DisplayName() string {
	if name, ok := displayNames[e]; ok {
		return name
	}
	return string(e)
}

// Asset is the stablecoin being quoted against USD
type Asset string

const (
	AssetUSDC Asset = "USDC"
	AssetUSDT Asset = "USDT"
)

// DefaultAsset is the asset served by the legacy "-p2p" routes
const DefaultAsset = AssetUSDC

// Pair is a (provider, asset) combination tracked by one aggregation cycle
type Pair struct {
	Exchange ExchangeID `json:"exchange"`
	Asset    Asset      `json:"asset"`
}

func NewPair(exchange ExchangeID, asset Asset) Pair {
	return Pair{
		Exchange: exchange,
		Asset:    asset,
	}
}

// Key returns the merged-response key for the pair. Deployments tracking a
// single asset key by bare exchange id.
func (p Pair) Key(multiAsset bool) string {
	if !multiAsset {
		return string(p.Exchange)
	}
	return strings.ToLower(fmt.Sprintf("%s-%s", p.Exchange, p.Asset))
}

func (p Pair) String() string {
	return fmt.Sprintf("%s/%s", p.Exchange, p.Asset)
}

// ParseExchangeID validates and normalizes a provider id
func ParseExchangeID(raw string) (ExchangeID, error) {
	id := ExchangeID(strings.ToLower(strings.TrimSpace(raw)))
	switch id {
	case ExchangeBinance, ExchangeBybit, ExchangeOKX, ExchangeKuCoin:
		return id, nil
	}
	return "", fmt.Errorf("%w: unknown exchange %q", ErrUnsupportedPair, raw)
}

// ParseAsset validates and normalizes an asset symbol
func ParseAsset(raw string) (Asset, error) {
	asset := Asset(strings.ToUpper(strings.TrimSpace(raw)))
	switch asset {
	case AssetUSDC, AssetUSDT:
		return asset, nil
	}
	return "", fmt.Errorf("%w: unknown asset %q", ErrUnsupportedPair, raw)
}
