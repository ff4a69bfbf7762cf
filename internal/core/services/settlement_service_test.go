package services_test

import (
	"context"
	"testing"

	"github.com/erayozt/hakedis-sub001/internal/apperrors"
	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	portssvc "github.com/erayozt/hakedis-sub001/internal/core/ports/services"
	"github.com/erayozt/hakedis-sub001/internal/core/services"
	"github.com/erayozt/hakedis-sub001/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SettlementServiceTestSuite struct {
	suite.Suite
	merchantRepo *MockMerchantRepository
	approvalRepo *MockApprovalRepository
	renderer     *MockRenderer
	hook         *MockPayoutHook
	service      portssvc.SettlementSvcFacade
	ctx          context.Context
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.merchantRepo = new(MockMerchantRepository)
	suite.approvalRepo = new(MockApprovalRepository)
	suite.renderer = new(MockRenderer)
	suite.hook = new(MockPayoutHook)
	suite.service = services.NewSettlementService(suite.merchantRepo, suite.approvalRepo, suite.renderer,
		services.WithPayoutHook(suite.hook),
		services.WithSettlementBase(fixedOptions()...))
	suite.ctx = context.Background()
}

func registry() []domain.MerchantAccount {
	return []domain.MerchantAccount{
		{MerchantID: "a", Cycle: 1, EligibilityStatus: domain.Eligible, PayableAmount: dec("20")},
		{MerchantID: "b", Cycle: 1, EligibilityStatus: domain.NoSettlement, PayableAmount: dec("-4")},
		{MerchantID: "c", Cycle: 3, EligibilityStatus: domain.Eligible, PayableAmount: dec("7.25")},
		{MerchantID: "d", Cycle: 1, EligibilityStatus: domain.Approved, PayableAmount: dec("9")},
	}
}

func approvalFor(id string) interface{} {
	return mock.MatchedBy(func(a domain.SettlementApproval) bool { return a.MerchantID == id })
}

func approvedMerchant(id string) interface{} {
	return mock.MatchedBy(func(m domain.MerchantAccount) bool {
		return m.MerchantID == id && m.EligibilityStatus == domain.Approved
	})
}

func (suite *SettlementServiceTestSuite) TestListEligible_RegistryOrder() {
	suite.merchantRepo.On("ListMerchants", mock.Anything).Return(registry(), nil).Once()

	eligible, err := suite.service.ListEligible(suite.ctx)

	suite.Require().NoError(err)
	suite.Require().Len(eligible, 2)
	suite.Equal("a", eligible[0].MerchantID)
	suite.Equal("c", eligible[1].MerchantID)
}

func (suite *SettlementServiceTestSuite) TestApprove_BulkPartialSuccess() {
	suite.merchantRepo.On("ListMerchants", mock.Anything).Return(registry(), nil).Once()
	suite.approvalRepo.On("SaveApproval", mock.Anything, approvedMerchant("a"), approvalFor("a")).Return(nil).Once()
	suite.approvalRepo.On("SaveApproval", mock.Anything, approvedMerchant("c"), approvalFor("c")).Return(nil).Once()
	suite.hook.On("OnSettlementApproved", mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()

	batch, err := suite.service.Approve(suite.ctx, []string{"c", "b", "a", "d", "ghost", "a"}, "ops-1")

	suite.Require().NoError(err)
	suite.Require().Len(batch.Approvals, 2)
	suite.Equal("a", batch.Approvals[0].MerchantID)
	suite.True(dec("20").Equal(batch.Approvals[0].ApprovedAmount))
	suite.Equal("c", batch.Approvals[1].MerchantID)
	suite.Equal(3, batch.Approvals[1].Cycle)
	suite.Equal("ops-1", batch.Approvals[1].ApprovedBy)
	suite.Equal(fixedNow, batch.Approvals[1].ApprovedAt)
	suite.Equal([]string{"b", "d", "ghost"}, batch.Skipped)
	suite.approvalRepo.AssertExpectations(suite.T())
	suite.hook.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestApprove_Idempotent() {
	afterFirst := registry()
	afterFirst[0].EligibilityStatus = domain.Approved
	suite.merchantRepo.On("ListMerchants", mock.Anything).Return(registry(), nil).Once()
	suite.merchantRepo.On("ListMerchants", mock.Anything).Return(afterFirst, nil).Once()
	suite.approvalRepo.On("SaveApproval", mock.Anything, approvedMerchant("a"), approvalFor("a")).Return(nil).Once()
	suite.hook.On("OnSettlementApproved", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	first, err := suite.service.Approve(suite.ctx, []string{"a"}, "ops-1")
	suite.Require().NoError(err)
	second, err := suite.service.Approve(suite.ctx, []string{"a"}, "ops-1")
	suite.Require().NoError(err)

	suite.Len(first.Approvals, 1)
	suite.Empty(second.Approvals)
	suite.Equal([]string{"a"}, second.Skipped)
	suite.approvalRepo.AssertNumberOfCalls(suite.T(), "SaveApproval", 1)
}

func (suite *SettlementServiceTestSuite) TestApprove_ConcurrentDuplicateIsSkipped() {
	suite.merchantRepo.On("ListMerchants", mock.Anything).Return(registry(), nil).Once()
	suite.approvalRepo.On("SaveApproval", mock.Anything, approvedMerchant("a"), approvalFor("a")).Return(apperrors.ErrDuplicate).Once()

	batch, err := suite.service.Approve(suite.ctx, []string{"a"}, "ops-1")

	suite.Require().NoError(err)
	suite.Empty(batch.Approvals)
	suite.Equal([]string{"a"}, batch.Skipped)
	suite.hook.AssertNotCalled(suite.T(), "OnSettlementApproved", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestApprove_HookErrorDoesNotUndoApproval() {
	suite.merchantRepo.On("ListMerchants", mock.Anything).Return(registry(), nil).Once()
	suite.approvalRepo.On("SaveApproval", mock.Anything, approvedMerchant("a"), approvalFor("a")).Return(nil).Once()
	suite.hook.On("OnSettlementApproved", mock.Anything, mock.Anything, approvalFor("a")).Return(assert.AnError).Once()

	batch, err := suite.service.Approve(suite.ctx, []string{"a"}, "ops-1")

	suite.Require().NoError(err)
	suite.Len(batch.Approvals, 1)
}

func (suite *SettlementServiceTestSuite) TestApprove_StoreErrorSkipsMerchant() {
	suite.merchantRepo.On("ListMerchants", mock.Anything).Return(registry(), nil).Once()
	suite.approvalRepo.On("SaveApproval", mock.Anything, approvedMerchant("a"), approvalFor("a")).Return(assert.AnError).Once()
	suite.approvalRepo.On("SaveApproval", mock.Anything, approvedMerchant("c"), approvalFor("c")).Return(nil).Once()
	suite.hook.On("OnSettlementApproved", mock.Anything, mock.Anything, approvalFor("c")).Return(nil).Once()

	batch, err := suite.service.Approve(suite.ctx, []string{"a", "c"}, "ops-1")

	suite.Require().NoError(err)
	suite.Require().Len(batch.Approvals, 1)
	suite.Equal("c", batch.Approvals[0].MerchantID)
	suite.Equal([]string{"a"}, batch.Skipped)
	suite.approvalRepo.AssertExpectations(suite.T())
	suite.hook.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestApprove_RequiresOperator() {
	_, err := suite.service.Approve(suite.ctx, []string{"a"}, "")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SettlementServiceTestSuite) TestListApprovals_NormalizesLimit() {
	next := "token-2"
	approvals := []domain.SettlementApproval{{ApprovalID: "x", MerchantID: "a"}}
	suite.approvalRepo.On("ListApprovals", mock.Anything, 20, (*string)(nil)).Return(approvals, &next, nil).Once()

	res, err := suite.service.ListApprovals(suite.ctx, dto.ListApprovalsParams{})

	suite.Require().NoError(err)
	suite.Len(res.Approvals, 1)
	suite.Equal(&next, res.NextToken)
}

func (suite *SettlementServiceTestSuite) TestExportApprovals_WalksAllPages() {
	token := "page-2"
	page1 := []domain.SettlementApproval{{ApprovalID: "1"}}
	page2 := []domain.SettlementApproval{{ApprovalID: "2"}}
	suite.approvalRepo.On("ListApprovals", mock.Anything, 100, (*string)(nil)).Return(page1, &token, nil).Once()
	suite.approvalRepo.On("ListApprovals", mock.Anything, 100, &token).Return(page2, nil, nil).Once()
	suite.renderer.On("RenderApprovals", []domain.SettlementApproval{{ApprovalID: "1"}, {ApprovalID: "2"}}).Return([]byte("csv"), nil).Once()

	doc, err := suite.service.ExportApprovals(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal([]byte("csv"), doc)
	suite.approvalRepo.AssertExpectations(suite.T())
}

func TestSettlementService(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
