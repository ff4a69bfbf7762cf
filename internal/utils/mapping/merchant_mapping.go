package mapping

import (
	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	"github.com/erayozt/hakedis-sub001/internal/models"
)

// ToModelMerchant converts a domain MerchantAccount to a model Merchant
func ToModelMerchant(d domain.MerchantAccount) models.Merchant {
	return models.Merchant{
		MerchantID:        d.MerchantID,
		DisplayName:       d.DisplayName,
		IBAN:              d.IBAN,
		Cycle:             d.Cycle,
		OpeningBalance:    d.OpeningBalance,
		RunningBalance:    d.RunningBalance,
		EligibilityStatus: string(d.EligibilityStatus),
		PayableAmount:     d.PayableAmount,
		CrossingDate:      d.CrossingDate,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMerchant converts a model Merchant to a domain MerchantAccount
func ToDomainMerchant(m models.Merchant) domain.MerchantAccount {
	return domain.MerchantAccount{
		MerchantID:        m.MerchantID,
		DisplayName:       m.DisplayName,
		IBAN:              m.IBAN,
		Cycle:             m.Cycle,
		OpeningBalance:    m.OpeningBalance,
		RunningBalance:    m.RunningBalance,
		EligibilityStatus: domain.EligibilityStatus(m.EligibilityStatus),
		PayableAmount:     m.PayableAmount,
		CrossingDate:      m.CrossingDate,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMerchantSlice converts a slice of model Merchants
func ToDomainMerchantSlice(ms []models.Merchant) []domain.MerchantAccount {
	ds := make([]domain.MerchantAccount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMerchant(m)
	}
	return ds
}

// ToModelLedgerEntries converts daily entries of one merchant cycle to rows.
// Sequence numbers continue from firstSeq.
func ToModelLedgerEntries(merchantID string, cycle int, firstSeq int64, entries []domain.DailyLedgerEntry) []models.LedgerEntry {
	rows := make([]models.LedgerEntry, len(entries))
	for i, e := range entries {
		rows[i] = models.LedgerEntry{
			MerchantID: merchantID,
			Cycle:      cycle,
			Seq:        firstSeq + int64(i),
			EntryDate:  e.Date,
			NetAmount:  e.NetAmount,
		}
	}
	return rows
}

// ToDomainLedgerEntry converts a ledger row to a daily entry.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.DailyLedgerEntry {
	return domain.DailyLedgerEntry{Date: m.EntryDate, NetAmount: m.NetAmount}
}
