package entities

import "time"

// ExchangeMetrics is the canonical snapshot produced from one provider call
type ExchangeMetrics struct {
	Volume    float64    `json:"volume"`
	Orders    int        `json:"orders"`
	AvgPrice  float64    `json:"avgPrice"`
	Timestamp time.Time  `json:"timestamp"`
	Exchange  ExchangeID `json:"exchange"`
	Asset     Asset      `json:"asset,omitempty"`
	Note      string     `json:"note,omitempty"`
}

func NewExchangeMetrics(exchange ExchangeID, volume float64, orders int, avgPrice float64, timestamp time.Time) *ExchangeMetrics {
	return &ExchangeMetrics{
		Volume:    volume,
		Orders:    orders,
		AvgPrice:  avgPrice,
		Timestamp: timestamp,
		Exchange:  exchange,
	}
}

// IsSynthetic reports whether the record was generated locally instead of read from upstream
func (m *ExchangeMetrics) IsSynthetic() bool {
	return m.Note != ""
}

// AggregateResponse maps pair keys to the metrics of every pair that reported.
// Built fresh per request and never shared.
type AggregateResponse map[string]*ExchangeMetrics

// TotalVolume sums the volume of every reporting pair
func (a AggregateResponse) TotalVolume() float64 {
	total := 0.0
	for _, m := range a {
		if m != nil {
			total += m.Volume
		}
	}
	return total
}

// TotalOrders sums the listing count of every reporting pair
func (a AggregateResponse) TotalOrders() int {
	total := 0
	for _, m := range a {
		if m != nil {
			total += m.Orders
		}
	}
	return total
}
