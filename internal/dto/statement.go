package dto

import (
	"time"

	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	"github.com/erayozt/hakedis-sub001/internal/utils"
	"github.com/erayozt/hakedis-sub001/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// CategoryVolumeRequest is one line of an optional volume breakdown.
type CategoryVolumeRequest struct {
	Category         string          `json:"category" binding:"required,max=64"`
	Volume           decimal.Decimal `json:"volume"`
	TransactionCount int             `json:"transactionCount" binding:"min=0"`
}

// StatementPeriodRequest carries the raw inputs of a reporting period.
type StatementPeriodRequest struct {
	PeriodID         string                  `json:"periodID" binding:"omitempty,max=64"` // Optional, generated when empty
	PeriodStart      time.Time               `json:"periodStart" binding:"required"`
	PeriodEnd        time.Time               `json:"periodEnd" binding:"required,gtefield=PeriodStart"`
	Volume           decimal.Decimal         `json:"volume"`
	RefundVolume     decimal.Decimal         `json:"refundVolume"`
	TransactionCount int                     `json:"transactionCount" binding:"min=0"`
	RefundCount      int                     `json:"refundCount" binding:"min=0"`
	CommissionRate   decimal.Decimal         `json:"commissionRate"`
	Commission       *decimal.Decimal        `json:"commission"` // Optional, volume * rate when omitted
	PackageFee       decimal.Decimal         `json:"packageFee"`
	OtherFees        decimal.Decimal         `json:"otherFees"`
	Categories       []CategoryVolumeRequest `json:"categories" binding:"omitempty,dive"`
}

// StatementPreviewRequest evaluates a period for a merchant without storing it.
type StatementPreviewRequest struct {
	MerchantID string `json:"merchantID" binding:"required"`
	StatementPeriodRequest
}

// ToDomain converts the request to a domain.StatementPeriod for merchantID.
func (r StatementPeriodRequest) ToDomain(merchantID string) domain.StatementPeriod {
	period := domain.StatementPeriod{
		PeriodID:         r.PeriodID,
		MerchantID:       merchantID,
		PeriodStart:      r.PeriodStart,
		PeriodEnd:        r.PeriodEnd,
		Volume:           r.Volume,
		RefundVolume:     r.RefundVolume,
		TransactionCount: r.TransactionCount,
		RefundCount:      r.RefundCount,
		CommissionRate:   r.CommissionRate,
		Commission:       r.Commission,
		PackageFee:       r.PackageFee,
		OtherFees:        r.OtherFees,
	}
	for _, c := range r.Categories {
		period.Categories = append(period.Categories, domain.CategoryVolume{
			Category:         domain.StatementCategory(c.Category),
			Volume:           c.Volume,
			TransactionCount: c.TransactionCount,
		})
	}
	return period
}

// StatementRowResponse is one displayed statement row.
type StatementRowResponse struct {
	Category   domain.StatementCategory `json:"category"`
	Count      int                      `json:"count"`
	Volume     string                   `json:"volume"`
	Commission string                   `json:"commission"`
	NetAmount  string                   `json:"netAmount"`
}

// StatementResponse is a statement rounded for display. Amounts are fixed-point strings.
type StatementResponse struct {
	PeriodID            string                 `json:"periodID"`
	MerchantID          string                 `json:"merchantID"`
	PeriodStart         time.Time              `json:"periodStart"`
	PeriodEnd           time.Time              `json:"periodEnd"`
	Volume              string                 `json:"volume"`
	RefundVolume        string                 `json:"refundVolume"`
	TransactionCount    int                    `json:"transactionCount"`
	RefundCount         int                    `json:"refundCount"`
	CommissionRate      string                 `json:"commissionRate"`
	Commission          string                 `json:"commission"`
	RefundCommission    string                 `json:"refundCommission"`
	NetVolume           string                 `json:"netVolume"`
	NetCommission       string                 `json:"netCommission"`
	NetSettlementAmount string                 `json:"netSettlementAmount"`
	PackageFee          string                 `json:"packageFee"`
	OtherFees           string                 `json:"otherFees"`
	TotalPayable        string                 `json:"totalPayable"`
	AverageTicket       string                 `json:"averageTicket"`
	AverageRefund       string                 `json:"averageRefund"`
	RefundRatio         string                 `json:"refundRatio"`
	EffectiveRate       string                 `json:"effectiveRate"`
	Rows                []StatementRowResponse `json:"rows"`
}

// ToStatementResponse rounds totals to places and formats them for display.
func ToStatementResponse(totals domain.StatementTotals, places int32) StatementResponse {
	r := accounting.RoundForDisplay(totals, places)
	f := func(d decimal.Decimal) string { return utils.FormatWithPrecision(d, places) }
	pct := func(d decimal.Decimal) string { return utils.FormatPercent(d, places) }

	res := StatementResponse{
		PeriodID:            r.PeriodID,
		MerchantID:          r.MerchantID,
		PeriodStart:         r.PeriodStart,
		PeriodEnd:           r.PeriodEnd,
		Volume:              f(r.Volume),
		RefundVolume:        f(r.RefundVolume),
		TransactionCount:    r.TransactionCount,
		RefundCount:         r.RefundCount,
		CommissionRate:      pct(totals.CommissionRate),
		Commission:          f(r.Commission),
		RefundCommission:    f(r.RefundCommission),
		NetVolume:           f(r.NetVolume),
		NetCommission:       f(r.NetCommission),
		NetSettlementAmount: f(r.NetSettlementAmount),
		PackageFee:          f(r.PackageFee),
		OtherFees:           f(r.OtherFees),
		TotalPayable:        f(r.TotalPayable),
		AverageTicket:       f(r.AverageTicket),
		AverageRefund:       f(r.AverageRefund),
		RefundRatio:         pct(totals.RefundRatio),
		EffectiveRate:       pct(totals.EffectiveRate),
		Rows:                make([]StatementRowResponse, len(r.Rows)),
	}
	for i, row := range r.Rows {
		res.Rows[i] = StatementRowResponse{
			Category:   row.Category,
			Count:      row.Count,
			Volume:     f(row.Volume),
			Commission: f(row.Commission),
			NetAmount:  f(row.NetAmount),
		}
	}
	return res
}

// ToListStatementResponse converts a slice of totals for display.
func ToListStatementResponse(totals []domain.StatementTotals, places int32) []StatementResponse {
	res := make([]StatementResponse, len(totals))
	for i, t := range totals {
		res[i] = ToStatementResponse(t, places)
	}
	return res
}
