package p2p

import (
	"fmt"

	"github.com/bytedance/sonic"

	"p2p-volume-tracker/internal/domain/entities"
	"p2p-volume-tracker/internal/infrastructure/config"
)

const (
	BinanceEndpoint = "https://p2p.binance.com/bapi/c2c/v2/friendly/c2c/adv/search"
	BybitEndpoint   = "https://api2.bybit.com/fiat/otc/item/online"
	OKXEndpoint     = "https://www.okx.com/v3/c2c/tradingOrders/books"
	KuCoinEndpoint  = "https://www.kucoin.com/_api/otc/ad/list"

	fiatCurrency = "USD"
	pageSize     = 20
)

// Descriptor holds everything that differs between exchanges: where to send
// the request, what body to send, and where the listings live in the reply
type Descriptor struct {
	Exchange entities.ExchangeID
	Endpoint string
	Assets   []entities.Asset

	// AllowsFallback marks providers whose public endpoint usually needs
	// credentials; only these consult the fallback strategy
	AllowsFallback bool

	// EmptyKind is reported when the reply holds no listings
	EmptyKind error

	Body   func(asset entities.Asset) any
	Decode func(raw []byte) ([]Listing, error)
}

// Supports reports whether the descriptor serves the asset
func (d Descriptor) Supports(asset entities.Asset) bool {
	for _, a := range d.Assets {
		if a == asset {
			return true
		}
	}
	return false
}

// Descriptors returns the built-in exchange table, with endpoint overrides applied
func Descriptors(endpoints config.EndpointsConfig) []Descriptor {
	return []Descriptor{
		binanceDescriptor(orDefault(endpoints.Binance, BinanceEndpoint)),
		bybitDescriptor(orDefault(endpoints.Bybit, BybitEndpoint)),
		okxDescriptor(orDefault(endpoints.OKX, OKXEndpoint)),
		kucoinDescriptor(orDefault(endpoints.KuCoin, KuCoinEndpoint)),
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func binanceDescriptor(endpoint string) Descriptor {
	return Descriptor{
		Exchange:  entities.ExchangeBinance,
		Endpoint:  endpoint,
		Assets:    []entities.Asset{entities.AssetUSDC, entities.AssetUSDT},
		EmptyKind: entities.ErrProviderEmptyResult,
		Body: func(asset entities.Asset) any {
			return binanceSearchRequest{
				Asset:         string(asset),
				Fiat:          fiatCurrency,
				MerchantCheck: false,
				Page:          1,
				PayTypes:      []string{},
				PublisherType: nil,
				Rows:          pageSize,
				TradeType:     "BUY",
			}
		},
		Decode: func(raw []byte) ([]Listing, error) {
			var resp binanceSearchResponse
			if err := decode(raw, &resp); err != nil {
				return nil, err
			}
			if (resp.Success != nil && !*resp.Success) || resp.Code.isError("000000") {
				return nil, markerError(entities.ErrProviderEmptyResult, resp.Code, resp.Message)
			}
			listings := make([]Listing, 0, len(resp.Data))
			for _, item := range resp.Data {
				listings = append(listings, Listing{
					Quantity: item.Adv.TradableQuantity.Float64(),
					Price:    item.Adv.Price.Float64(),
				})
			}
			return listings, nil
		},
	}
}

func bybitDescriptor(endpoint string) Descriptor {
	return Descriptor{
		Exchange:  entities.ExchangeBybit,
		Endpoint:  endpoint,
		Assets:    []entities.Asset{entities.AssetUSDC, entities.AssetUSDT},
		EmptyKind: entities.ErrProviderEmptyResult,
		Body: func(asset entities.Asset) any {
			return bybitOnlineRequest{
				TokenID:    string(asset),
				CurrencyID: fiatCurrency,
				Payment:    []string{},
				Side:       "1",
				Size:       fmt.Sprint(pageSize),
				Page:       "1",
				Amount:     "",
			}
		},
		Decode: func(raw []byte) ([]Listing, error) {
			var resp bybitOnlineResponse
			if err := decode(raw, &resp); err != nil {
				return nil, err
			}
			if resp.RetCode.isError() {
				return nil, markerError(entities.ErrProviderEmptyResult, resp.RetCode, resp.RetMsg)
			}
			if resp.Result == nil {
				return nil, nil
			}
			listings := make([]Listing, 0, len(resp.Result.Items))
			for _, item := range resp.Result.Items {
				listings = append(listings, Listing{
					Quantity: item.LastQuantity.Float64(),
					Price:    item.Price.Float64(),
				})
			}
			return listings, nil
		},
	}
}

// OKX only serves USDC from the public book endpoint
func okxDescriptor(endpoint string) Descriptor {
	return Descriptor{
		Exchange:       entities.ExchangeOKX,
		Endpoint:       endpoint,
		Assets:         []entities.Asset{entities.AssetUSDC},
		AllowsFallback: true,
		EmptyKind:      entities.ErrProviderAuthRequired,
		Body: func(asset entities.Asset) any {
			return okxBooksRequest{
				QuoteCurrency: fiatCurrency,
				BaseCurrency:  string(asset),
				Side:          "buy",
				PaymentMethod: "all",
				UserType:      "all",
			}
		},
		Decode: func(raw []byte) ([]Listing, error) {
			var resp okxBooksResponse
			if err := decode(raw, &resp); err != nil {
				return nil, err
			}
			if resp.Code.isError() {
				return nil, markerError(entities.ErrProviderAuthRequired, resp.Code, resp.Msg)
			}
			if resp.Data == nil {
				return nil, nil
			}
			listings := make([]Listing, 0, len(resp.Data.Buy))
			for _, item := range resp.Data.Buy {
				listings = append(listings, Listing{
					Quantity: item.AvailableAmount.Float64(),
					Price:    item.Price.Float64(),
				})
			}
			return listings, nil
		},
	}
}

func kucoinDescriptor(endpoint string) Descriptor {
	return Descriptor{
		Exchange:       entities.ExchangeKuCoin,
		Endpoint:       endpoint,
		Assets:         []entities.Asset{entities.AssetUSDC},
		AllowsFallback: true,
		EmptyKind:      entities.ErrProviderAuthRequired,
		Body: func(asset entities.Asset) any {
			return kucoinAdListRequest{
				Currency: string(asset),
				Legal:    fiatCurrency,
				Side:     "BUY",
				Page:     1,
				PageSize: pageSize,
			}
		},
		Decode: func(raw []byte) ([]Listing, error) {
			var resp kucoinAdListResponse
			if err := decode(raw, &resp); err != nil {
				return nil, err
			}
			if (resp.Success != nil && !*resp.Success) || resp.Code.isError("200") {
				return nil, markerError(entities.ErrProviderAuthRequired, resp.Code, resp.Msg)
			}
			if resp.Data == nil {
				return nil, nil
			}
			listings := make([]Listing, 0, len(resp.Data.Items))
			for _, item := range resp.Data.Items {
				listings = append(listings, Listing{
					Quantity: item.AvailableAmount.Float64(),
					Price:    item.Price.Float64(),
				})
			}
			return listings, nil
		},
	}
}

// decode unmarshals with sonic; any syntax or type error at the listing path
// is a schema mismatch
func decode(raw []byte, v any) error {
	if err := sonic.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", entities.ErrUpstreamSchemaMismatch, err)
	}
	return nil
}

func markerError(kind error, code flexCode, msg string) error {
	if msg == "" {
		return fmt.Errorf("%w: upstream code %s", kind, code)
	}
	return fmt.Errorf("%w: upstream code %s: %s", kind, code, msg)
}
