package dashboard

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"p2p-volume-tracker/internal/domain/entities"
	"p2p-volume-tracker/pkg/utils"
)

// ErrorBanner is shown once while the last poll failed
const ErrorBanner = "Failed to fetch exchange data"

// Summary holds the rollups shown above the cards
type Summary struct {
	TotalVolume float64
	TotalOrders int
	Count       int
}

func Summarize(data entities.AggregateResponse) Summary {
	count := 0
	for _, m := range data {
		if m != nil {
			count++
		}
	}
	return Summary{
		TotalVolume: data.TotalVolume(),
		TotalOrders: data.TotalOrders(),
		Count:       count,
	}
}

// Card is one reporting pair
type Card struct {
	Key     string
	Title   string
	Metrics *entities.ExchangeMetrics
}

// Cards orders reporting pairs by keys; keys not listed follow alphabetically
func Cards(data entities.AggregateResponse, keys []string) []Card {
	cards := make([]Card, 0, len(data))
	seen := make(map[string]bool, len(keys))

	for _, key := range keys {
		seen[key] = true
		if m, ok := data[key]; ok && m != nil {
			cards = append(cards, newCard(key, m))
		}
	}

	var extra []string
	for key, m := range data {
		if !seen[key] && m != nil {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		cards = append(cards, newCard(key, data[key]))
	}
	return cards
}

func newCard(key string, m *entities.ExchangeMetrics) Card {
	title := m.Exchange.DisplayName()
	if m.Asset != "" {
		title = fmt.Sprintf("%s %s", title, m.Asset)
	}
	return Card{Key: key, Title: title, Metrics: m}
}

// Render writes the full board for state. A non-zero staleAfter flags data
// older than that.
func Render(w io.Writer, state State, keys []string, now time.Time, staleAfter time.Duration) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "P2P Volume Tracker")
	if state.UpdatedAt.IsZero() {
		fmt.Fprintln(tw, "Last update:\tnever")
	} else {
		age := utils.FormatAge(now, state.UpdatedAt)
		if staleAfter > 0 && utils.IsTimestampStale(now, state.UpdatedAt, staleAfter) {
			age += ", stale"
		}
		fmt.Fprintf(tw, "Last update:\t%s (%s)\n", state.UpdatedAt.Format(time.RFC3339), age)
	}
	if state.Err != nil {
		fmt.Fprintf(tw, "! %s: %v\n", ErrorBanner, state.Err)
	}
	fmt.Fprintln(tw)

	summary := Summarize(state.Data)
	fmt.Fprintf(tw, "Total volume:\t%.2f\n", summary.TotalVolume)
	fmt.Fprintf(tw, "Total orders:\t%d\n", summary.TotalOrders)
	fmt.Fprintf(tw, "Exchanges reporting:\t%d\n", summary.Count)
	fmt.Fprintln(tw)

	cards := Cards(state.Data, keys)
	if len(cards) == 0 {
		fmt.Fprintln(tw, "No exchange data available")
		return tw.Flush()
	}

	fmt.Fprintln(tw, "EXCHANGE\tVOLUME\tORDERS\tAVG PRICE\tNOTE")
	for _, c := range cards {
		fmt.Fprintf(tw, "%s\t%.2f\t%d\t%.4f\t%s\n",
			c.Title, c.Metrics.Volume, c.Metrics.Orders, c.Metrics.AvgPrice, c.Metrics.Note)
	}
	return tw.Flush()
}
