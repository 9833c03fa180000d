package legalparams

import (
	"time"

	"github.com/shopspring/decimal"
)

type ParameterVersionResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	EffectiveFrom  string     `json:"effective_from"`
	EffectiveUntil *string    `json:"effective_until,omitempty"`
	IsActive       bool       `json:"is_active"`
	Parameters     Parameters `json:"parameters"`
	CreatedAt      time.Time  `json:"created_at"`
}

type ParameterVersionSummaryResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	EffectiveFrom  string  `json:"effective_from"`
	EffectiveUntil *string `json:"effective_until,omitempty"`
	IsActive       bool    `json:"is_active"`
}

type IndexValueResponse struct {
	Date  string          `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// CurrentIndexesResponse carries the UF and UTM values in force today.
type CurrentIndexesResponse struct {
	UF  IndexValueResponse `json:"uf"`
	UTM IndexValueResponse `json:"utm"`
}
