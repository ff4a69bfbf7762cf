package dto

import (
	"time"

	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateMerchantRequest defines the data needed to register a merchant.
type CreateMerchantRequest struct {
	MerchantID     string          `json:"merchantID" binding:"omitempty,max=64"` // Optional, generated when empty
	DisplayName    string          `json:"displayName" binding:"required,max=200"`
	IBAN           string          `json:"iban" binding:"required,alphanum,min=15,max=34"`
	OpeningBalance decimal.Decimal `json:"openingBalance"` // carry-over seed of the first cycle
}

// OpenCycleRequest starts the next settlement cycle of a merchant.
type OpenCycleRequest struct {
	OpeningBalance *decimal.Decimal `json:"openingBalance"` // Optional, zero when omitted
}

// MerchantResponse defines the data returned for a merchant.
type MerchantResponse struct {
	MerchantID        string                   `json:"merchantID"`
	DisplayName       string                   `json:"displayName"`
	IBAN              string                   `json:"iban"`
	Cycle             int                      `json:"cycle"`
	OpeningBalance    decimal.Decimal          `json:"openingBalance"`
	RunningBalance    decimal.Decimal          `json:"runningBalance"`
	EligibilityStatus domain.EligibilityStatus `json:"eligibilityStatus"`
	PayableAmount     decimal.Decimal          `json:"payableAmount"`
	CrossingDate      *time.Time               `json:"crossingDate,omitempty"`
	CreatedAt         time.Time                `json:"createdAt"`
	CreatedBy         string                   `json:"createdBy"`
	LastUpdatedAt     time.Time                `json:"lastUpdatedAt"`
	LastUpdatedBy     string                   `json:"lastUpdatedBy"`
}

// ToMerchantResponse converts a domain.MerchantAccount to MerchantResponse DTO.
func ToMerchantResponse(m *domain.MerchantAccount) MerchantResponse {
	return MerchantResponse{
		MerchantID:        m.MerchantID,
		DisplayName:       m.DisplayName,
		IBAN:              m.IBAN,
		Cycle:             m.Cycle,
		OpeningBalance:    m.OpeningBalance,
		RunningBalance:    m.RunningBalance,
		EligibilityStatus: m.EligibilityStatus,
		PayableAmount:     m.PayableAmount,
		CrossingDate:      m.CrossingDate,
		CreatedAt:         m.CreatedAt,
		CreatedBy:         m.CreatedBy,
		LastUpdatedAt:     m.LastUpdatedAt,
		LastUpdatedBy:     m.LastUpdatedBy,
	}
}

// ToListMerchantResponse converts a slice of domain.MerchantAccount to MerchantResponse DTOs.
func ToListMerchantResponse(merchants []domain.MerchantAccount) []MerchantResponse {
	res := make([]MerchantResponse, len(merchants))
	for i := range merchants {
		res[i] = ToMerchantResponse(&merchants[i])
	}
	return res
}
