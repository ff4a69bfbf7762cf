package domain_test

import (
	"testing"
	"time"

	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMerchantAccount_ApplyEligibility(t *testing.T) {
	crossed := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	res := domain.EligibilityResult{
		Status:        domain.Eligible,
		PayableAmount: decimal.NewFromInt(20),
		FinalBalance:  decimal.NewFromInt(20),
		CrossingDate:  &crossed,
	}

	tests := []struct {
		name        string
		status      domain.EligibilityStatus
		wantApplied bool
		wantStatus  domain.EligibilityStatus
	}{
		{name: "no settlement becomes eligible", status: domain.NoSettlement, wantApplied: true, wantStatus: domain.Eligible},
		{name: "eligible is refreshed", status: domain.Eligible, wantApplied: true, wantStatus: domain.Eligible},
		{name: "approved is terminal", status: domain.Approved, wantApplied: false, wantStatus: domain.Approved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := domain.MerchantAccount{MerchantID: "m", EligibilityStatus: tt.status, PayableAmount: decimal.NewFromInt(-1)}

			applied := acc.ApplyEligibility(res)

			assert.Equal(t, tt.wantApplied, applied)
			assert.Equal(t, tt.wantStatus, acc.EligibilityStatus)
			if tt.wantApplied {
				assert.True(t, acc.PayableAmount.Equal(decimal.NewFromInt(20)))
				assert.Equal(t, &crossed, acc.CrossingDate)
			} else {
				assert.True(t, acc.PayableAmount.Equal(decimal.NewFromInt(-1)))
			}
		})
	}
}

func TestMerchantAccount_ApproveOnce(t *testing.T) {
	now := time.Now()
	acc := domain.MerchantAccount{MerchantID: "m", Cycle: 3, EligibilityStatus: domain.Eligible, PayableAmount: decimal.RequireFromString("12.5")}

	approval, ok := acc.Approve("a-1", "op", now)
	assert.True(t, ok)
	assert.Equal(t, "a-1", approval.ApprovalID)
	assert.Equal(t, 3, approval.Cycle)
	assert.True(t, approval.ApprovedAmount.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, domain.Approved, acc.EligibilityStatus)
	assert.Equal(t, "op", acc.LastUpdatedBy)

	_, ok = acc.Approve("a-2", "op", now)
	assert.False(t, ok)
}

func TestMerchantAccount_StartCycle(t *testing.T) {
	crossed := time.Now()
	acc := domain.MerchantAccount{
		MerchantID:        "m",
		Cycle:             1,
		EligibilityStatus: domain.Approved,
		PayableAmount:     decimal.NewFromInt(40),
		RunningBalance:    decimal.NewFromInt(40),
		CrossingDate:      &crossed,
	}

	acc.StartCycle(decimal.NewFromInt(-3), "op", time.Now())

	assert.Equal(t, 2, acc.Cycle)
	assert.Equal(t, domain.NoSettlement, acc.EligibilityStatus)
	assert.True(t, acc.OpeningBalance.Equal(decimal.NewFromInt(-3)))
	assert.True(t, acc.RunningBalance.Equal(decimal.NewFromInt(-3)))
	assert.Nil(t, acc.CrossingDate)
	assert.False(t, acc.IsEligible())
}
