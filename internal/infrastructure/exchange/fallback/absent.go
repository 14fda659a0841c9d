package fallback

import (
	"p2p-volume-tracker/internal/domain/entities"
)

// Absent surfaces the original failure so the pair is omitted
type Absent struct{}

func NewAbsent() *Absent {
	return &Absent{}
}

func (a *Absent) Recover(_ entities.Pair, cause error) (*entities.ExchangeMetrics, error) {
	return nil, cause
}

func (a *Absent) Name() string {
	return "absent"
}
