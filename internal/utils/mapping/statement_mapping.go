package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	"github.com/erayozt/hakedis-sub001/internal/models"
)

// ToModelStatementPeriod converts a domain period to a row. Categories are stored as JSON.
func ToModelStatementPeriod(d domain.StatementPeriod) (models.StatementPeriod, error) {
	categories := []byte("[]")
	if len(d.Categories) > 0 {
		var err error
		if categories, err = json.Marshal(d.Categories); err != nil {
			return models.StatementPeriod{}, fmt.Errorf("failed to encode categories: %w", err)
		}
	}
	return models.StatementPeriod{
		PeriodID:         d.PeriodID,
		MerchantID:       d.MerchantID,
		PeriodStart:      d.PeriodStart,
		PeriodEnd:        d.PeriodEnd,
		Volume:           d.Volume,
		RefundVolume:     d.RefundVolume,
		TransactionCount: d.TransactionCount,
		RefundCount:      d.RefundCount,
		CommissionRate:   d.CommissionRate,
		Commission:       d.Commission,
		PackageFee:       d.PackageFee,
		OtherFees:        d.OtherFees,
		Categories:       categories,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainStatementPeriod converts a row to a domain period.
func ToDomainStatementPeriod(m models.StatementPeriod) (domain.StatementPeriod, error) {
	var categories []domain.CategoryVolume
	if len(m.Categories) > 0 {
		if err := json.Unmarshal(m.Categories, &categories); err != nil {
			return domain.StatementPeriod{}, fmt.Errorf("failed to decode categories of period %s: %w", m.PeriodID, err)
		}
	}
	if len(categories) == 0 {
		categories = nil
	}
	return domain.StatementPeriod{
		PeriodID:         m.PeriodID,
		MerchantID:       m.MerchantID,
		PeriodStart:      m.PeriodStart,
		PeriodEnd:        m.PeriodEnd,
		Volume:           m.Volume,
		RefundVolume:     m.RefundVolume,
		TransactionCount: m.TransactionCount,
		RefundCount:      m.RefundCount,
		CommissionRate:   m.CommissionRate,
		Commission:       m.Commission,
		PackageFee:       m.PackageFee,
		OtherFees:        m.OtherFees,
		Categories:       categories,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}, nil
}
