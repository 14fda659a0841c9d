package p2p

import (
	"bytes"
	"math"
	"strconv"
)

// flexNumber decodes a JSON string or number. Missing, null and
// non-numeric values decode as 0 and never fail the enclosing record.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = bytes.TrimSpace(raw[1 : len(raw)-1])
	}

	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*n = 0
		return nil
	}
	*n = flexNumber(v)
	return nil
}

func (n flexNumber) Float64() float64 {
	return float64(n)
}

// flexCode decodes status codes that upstreams send as either strings or numbers
type flexCode string

func (c *flexCode) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		*c = ""
		return nil
	}
	*c = flexCode(bytes.Trim(raw, `"`))
	return nil
}

// isError reports whether the code is set to something other than success
func (c flexCode) isError(success ...string) bool {
	if c == "" || c == "0" {
		return false
	}
	for _, s := range success {
		if string(c) == s {
			return false
		}
	}
	return true
}

// Listing is one advertisement reduced to the two fields the normalizer reads
type Listing struct {
	Quantity float64
	Price    float64
}

// Request bodies. Field order and types follow each exchange's web client.

type binanceSearchRequest struct {
	Asset         string   `json:"asset"`
	Fiat          string   `json:"fiat"`
	MerchantCheck bool     `json:"merchantCheck"`
	Page          int      `json:"page"`
	PayTypes      []string `json:"payTypes"`
	PublisherType *string  `json:"publisherType"`
	Rows          int      `json:"rows"`
	TradeType     string   `json:"tradeType"`
}

type bybitOnlineRequest struct {
	TokenID    string   `json:"tokenId"`
	CurrencyID string   `json:"currencyId"`
	Payment    []string `json:"payment"`
	Side       string   `json:"side"`
	Size       string   `json:"size"`
	Page       string   `json:"page"`
	Amount     string   `json:"amount"`
}

type okxBooksRequest struct {
	QuoteCurrency string `json:"quoteCurrency"`
	BaseCurrency  string `json:"baseCurrency"`
	Side          string `json:"side"`
	PaymentMethod string `json:"paymentMethod"`
	UserType      string `json:"userType"`
}

type kucoinAdListRequest struct {
	Currency string `json:"currency"`
	Legal    string `json:"legal"`
	Side     string `json:"side"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

// Response payloads, reduced to the listing path and the error marker.

type binanceSearchResponse struct {
	Code    flexCode `json:"code"`
	Message string   `json:"message"`
	Success *bool    `json:"success"`
	Data    []struct {
		Adv struct {
			TradableQuantity flexNumber `json:"tradableQuantity"`
			Price            flexNumber `json:"price"`
		} `json:"adv"`
	} `json:"data"`
}

type bybitOnlineResponse struct {
	RetCode flexCode `json:"ret_code"`
	RetMsg  string   `json:"ret_msg"`
	Result  *struct {
		Items []struct {
			LastQuantity flexNumber `json:"lastQuantity"`
			Price        flexNumber `json:"price"`
		} `json:"items"`
	} `json:"result"`
}

type okxBooksResponse struct {
	Code flexCode `json:"code"`
	Msg  string   `json:"msg"`
	Data *struct {
		Buy []struct {
			AvailableAmount flexNumber `json:"availableAmount"`
			Price           flexNumber `json:"price"`
		} `json:"buy"`
	} `json:"data"`
}

type kucoinAdListResponse struct {
	Code    flexCode `json:"code"`
	Msg     string   `json:"msg"`
	Success *bool    `json:"success"`
	Data    *struct {
		Items []struct {
			AvailableAmount flexNumber `json:"availableAmount"`
			Price           flexNumber `json:"price"`
		} `json:"items"`
	} `json:"data"`
}
