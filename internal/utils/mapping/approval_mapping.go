package mapping

import (
	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	"github.com/erayozt/hakedis-sub001/internal/models"
)

// ToModelSettlementApproval converts a domain approval to a model approval
func ToModelSettlementApproval(d domain.SettlementApproval) models.SettlementApproval {
	return models.SettlementApproval(d)
}

// ToDomainSettlementApproval converts a model approval to a domain approval
func ToDomainSettlementApproval(m models.SettlementApproval) domain.SettlementApproval {
	return domain.SettlementApproval(m)
}
