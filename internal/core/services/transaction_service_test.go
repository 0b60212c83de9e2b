package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/hotel_ops_app/internal/apperrors"
	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	portssvc "github.com/SscSPs/hotel_ops_app/internal/core/ports/services"
	"github.com/SscSPs/hotel_ops_app/internal/core/services"
	"github.com/SscSPs/hotel_ops_app/internal/dto"
)

// --- Mock RoleLimitService (as used by TransactionService) ---
type MockRoleLimitService struct {
	mock.Mock
}

var _ portssvc.RoleLimitSvcFacade = (*MockRoleLimitService)(nil)

func (m *MockRoleLimitService) GetRoleLimit(ctx context.Context, hotelID string, role domain.Role) (domain.RoleLimit, error) {
	args := m.Called(ctx, hotelID, role)
	return args.Get(0).(domain.RoleLimit), args.Error(1)
}

func (m *MockRoleLimitService) ListRoleLimits(ctx context.Context, actor domain.Actor, hotelID string) ([]domain.RoleLimit, error) {
	args := m.Called(ctx, actor, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RoleLimit), args.Error(1)
}

func (m *MockRoleLimitService) UpsertRoleLimit(ctx context.Context, actor domain.Actor, hotelID string, role domain.Role, req dto.UpsertRoleLimitRequest) (*domain.RoleLimit, error) {
	args := m.Called(ctx, actor, hotelID, role, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoleLimit), args.Error(1)
}

// --- Test Suite ---
type TransactionServiceTestSuite struct {
	suite.Suite
	repo       *fakeTxnRepo
	roleLimits *MockRoleLimitService
	events     *recordingPublisher
	service    portssvc.TransactionSvcFacade
	ctx        context.Context

	cashier domain.Actor
	manager domain.Actor
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.repo = newFakeTxnRepo()
	suite.roleLimits = new(MockRoleLimitService)
	suite.events = &recordingPublisher{}
	suite.service = services.NewTransactionService(suite.repo, suite.roleLimits, nil,
		services.WithEventPublisher(suite.events), services.WithClock(fixedClock))
	suite.ctx = context.Background()
	suite.cashier = actorAs(domain.RoleCashier, "cashier-1")
	suite.manager = actorAs(domain.RoleManager, "manager-1")
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

func (suite *TransactionServiceTestSuite) cashierLimits(limit domain.RoleLimit) {
	limit.HotelID = testHotel
	limit.Role = domain.RoleCashier
	suite.roleLimits.On("GetRoleLimit", mock.Anything, testHotel, domain.RoleCashier).Return(limit, nil)
}

func (suite *TransactionServiceTestSuite) managerLimits(limit domain.RoleLimit) {
	limit.HotelID = testHotel
	limit.Role = domain.RoleManager
	suite.roleLimits.On("GetRoleLimit", mock.Anything, testHotel, domain.RoleManager).Return(limit, nil)
}

func cashIn(amount string) domain.NewTransaction {
	return domain.NewTransaction{
		Amount:        dec(amount),
		TxnType:       domain.TxnCashIn,
		PaymentMethod: domain.PaymentCash,
		Purpose:       "  Room 204 settlement ",
	}
}

func (suite *TransactionServiceTestSuite) TestRecordTransaction_Posted() {
	suite.cashierLimits(domain.RoleLimit{MaxTransactionAmount: decPtr("500")})

	txn, err := suite.service.RecordTransaction(suite.ctx, suite.cashier, testHotel, cashIn("450"))

	suite.Require().NoError(err)
	suite.Equal(domain.TxnPosted, txn.Status)
	suite.Equal("Room 204 settlement", txn.Purpose)
	suite.Equal(domain.RoleCashier, txn.CreatedByRole)
	suite.Equal("cashier-1", txn.CreatedBy)
	suite.Equal(fixedNow, txn.CreatedAt)
	suite.Equal([]domain.EventName{domain.EventTransactionCreated}, suite.events.names())
}

func (suite *TransactionServiceTestSuite) TestRecordTransaction_PerTransactionLimit() {
	suite.cashierLimits(domain.RoleLimit{MaxTransactionAmount: decPtr("500")})

	txn, err := suite.service.RecordTransaction(suite.ctx, suite.cashier, testHotel, cashIn("600"))

	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrLimitExceeded)
	var limitErr *apperrors.LimitError
	suite.Require().True(errors.As(err, &limitErr))
	suite.Equal(apperrors.LimitPerTransaction, limitErr.Kind)
	suite.Equal("500.00", limitErr.Limit.StringFixed(2))
	suite.Empty(suite.repo.txns)
	suite.Empty(suite.events.names())
}

func (suite *TransactionServiceTestSuite) TestRecordTransaction_AboveApprovalThresholdIsPending() {
	suite.cashierLimits(domain.RoleLimit{RequiresApprovalAbove: decPtr("300")})

	txn, err := suite.service.RecordTransaction(suite.ctx, suite.cashier, testHotel, cashIn("400"))

	suite.Require().NoError(err)
	suite.Equal(domain.TxnPendingApproval, txn.Status)

	total, err := suite.service.DailyTotal(suite.ctx, suite.cashier, testHotel, fixedNow)
	suite.Require().NoError(err)
	suite.True(total.IsZero(), "pending amounts are not counted")
}

func (suite *TransactionServiceTestSuite) TestRecordTransaction_DailyLimit() {
	suite.cashierLimits(domain.RoleLimit{MaxDailyAmount: decPtr("1000")})

	_, err := suite.service.RecordTransaction(suite.ctx, suite.cashier, testHotel, cashIn("600"))
	suite.Require().NoError(err)

	txn, err := suite.service.RecordTransaction(suite.ctx, suite.cashier, testHotel, cashIn("600"))
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrDailyLimitExceeded)
	var limitErr *apperrors.LimitError
	suite.Require().True(errors.As(err, &limitErr))
	suite.Equal(apperrors.LimitDaily, limitErr.Kind)
	suite.Equal("600.00", limitErr.Current.StringFixed(2))

	_, err = suite.service.RecordTransaction(suite.ctx, suite.cashier, testHotel, cashIn("400"))
	suite.NoError(err, "exactly reaching the ceiling is allowed")
}

func (suite *TransactionServiceTestSuite) TestRecordTransaction_RejectedAmountsNotCounted() {
	suite.cashierLimits(domain.RoleLimit{MaxDailyAmount: decPtr("1000"), RequiresApprovalAbove: decPtr("700")})

	pending, err := suite.service.RecordTransaction(suite.ctx, suite.cashier, testHotel, cashIn("800"))
	suite.Require().NoError(err)
	suite.Require().Equal(domain.TxnPendingApproval, pending.Status)

	rejected, err := suite.service.RejectTransaction(suite.ctx, suite.manager, testHotel, pending.TransactionID, "Receipt does not match the till")
	suite.Require().NoError(err)
	suite.Equal(domain.TxnRejected, rejected.Status)
	suite.Equal("manager-1", *rejected.RejectedBy)

	_, err = suite.service.RecordTransaction(suite.ctx, suite.cashier, testHotel, cashIn("700"))
	suite.Require().NoError(err)

	total, err := suite.service.DailyTotal(suite.ctx, suite.cashier, testHotel, fixedNow)
	suite.Require().NoError(err)
	suite.Equal("700.00", total.StringFixed(2))
}

func (suite *TransactionServiceTestSuite) TestRecordTransaction_Validation() {
	_, err := suite.service.RecordTransaction(suite.ctx, suite.cashier, testHotel, cashIn("0"))
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.RecordTransaction(suite.ctx, suite.cashier, testHotel, cashIn("10.005"))
	suite.ErrorIs(err, apperrors.ErrValidation)

	bad := cashIn("10")
	bad.TxnType = "gift"
	_, err = suite.service.RecordTransaction(suite.ctx, suite.cashier, testHotel, bad)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.roleLimits.AssertNotCalled(suite.T(), "GetRoleLimit", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestRecordTransaction_Forbidden() {
	guard := actorAs(domain.RoleSecurity, "guard-1")

	_, err := suite.service.RecordTransaction(suite.ctx, guard, testHotel, cashIn("10"))

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TransactionServiceTestSuite) TestApproveTransaction_IdempotentAndCounted() {
	suite.cashierLimits(domain.RoleLimit{RequiresApprovalAbove: decPtr("300")})
	pending, err := suite.service.RecordTransaction(suite.ctx, suite.cashier, testHotel, cashIn("400"))
	suite.Require().NoError(err)

	var wg sync.WaitGroup
	results := make([]*domain.Transaction, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = suite.service.ApproveTransaction(suite.ctx, suite.manager, testHotel, pending.TransactionID)
		}(i)
	}
	wg.Wait()

	for i := range errs {
		suite.Require().NoError(errs[i])
		suite.Equal(domain.TxnApproved, results[i].Status)
	}
	stored := suite.repo.txns[pending.TransactionID]
	suite.Equal(int64(2), stored.Version, "only one approval is applied")

	total, err := suite.service.DailyTotal(suite.ctx, suite.cashier, testHotel, fixedNow)
	suite.Require().NoError(err)
	suite.Equal("400.00", total.StringFixed(2))
}

func (suite *TransactionServiceTestSuite) TestApproveTransaction_Forbidden() {
	_, err := suite.service.ApproveTransaction(suite.ctx, suite.cashier, testHotel, "txn-1")
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TransactionServiceTestSuite) TestRejectTransaction_ShortReason() {
	_, err := suite.service.RejectTransaction(suite.ctx, suite.manager, testHotel, "txn-1", "  too short ")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestRejectTransaction_NotPending() {
	suite.cashierLimits(domain.RoleLimit{})
	posted, err := suite.service.RecordTransaction(suite.ctx, suite.cashier, testHotel, cashIn("50"))
	suite.Require().NoError(err)

	_, err = suite.service.RejectTransaction(suite.ctx, suite.manager, testHotel, posted.TransactionID, "Entered against the wrong shift")

	var transitionErr *apperrors.TransitionError
	suite.Require().True(errors.As(err, &transitionErr))
	suite.Equal("posted", transitionErr.Current)
	suite.Equal("rejected", transitionErr.Requested)
}

func (suite *TransactionServiceTestSuite) TestVoidTransaction_RequiresFlag() {
	suite.cashierLimits(domain.RoleLimit{})
	suite.managerLimits(domain.RoleLimit{CanVoidTransactions: false})
	posted, err := suite.service.RecordTransaction(suite.ctx, suite.cashier, testHotel, cashIn("50"))
	suite.Require().NoError(err)

	_, err = suite.service.VoidTransaction(suite.ctx, suite.manager, testHotel, posted.TransactionID, "Duplicate entry for table 4")

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Equal(domain.TxnPosted, suite.repo.txns[posted.TransactionID].Status)
}

func (suite *TransactionServiceTestSuite) TestVoidTransaction_Terminal() {
	suite.cashierLimits(domain.RoleLimit{CanVoidTransactions: true})
	posted, err := suite.service.RecordTransaction(suite.ctx, suite.cashier, testHotel, cashIn("50"))
	suite.Require().NoError(err)

	voided, err := suite.service.VoidTransaction(suite.ctx, suite.cashier, testHotel, posted.TransactionID, "Duplicate entry for table 4")
	suite.Require().NoError(err)
	suite.Equal(domain.TxnVoided, voided.Status)
	suite.Equal("Duplicate entry for table 4", *voided.VoidReason)

	_, err = suite.service.VoidTransaction(suite.ctx, suite.cashier, testHotel, posted.TransactionID, "Duplicate entry for table 4")
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)

	total, err := suite.service.DailyTotal(suite.ctx, suite.cashier, testHotel, fixedNow)
	suite.Require().NoError(err)
	suite.True(total.IsZero())
}

func (suite *TransactionServiceTestSuite) TestGetTransaction_OwnerOrLedgerViewer() {
	suite.cashierLimits(domain.RoleLimit{})
	txn, err := suite.service.RecordTransaction(suite.ctx, suite.cashier, testHotel, cashIn("50"))
	suite.Require().NoError(err)

	_, err = suite.service.GetTransaction(suite.ctx, suite.cashier, testHotel, txn.TransactionID)
	suite.NoError(err)

	housekeeper := actorAs(domain.RoleHousekeeping, "hk-1")
	_, err = suite.service.GetTransaction(suite.ctx, housekeeper, testHotel, txn.TransactionID)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TransactionServiceTestSuite) TestListTransactions() {
	suite.cashierLimits(domain.RoleLimit{})
	for _, amount := range []string{"10", "20", "30"} {
		_, err := suite.service.RecordTransaction(suite.ctx, suite.cashier, testHotel, cashIn(amount))
		suite.Require().NoError(err)
	}

	resp, err := suite.service.ListTransactions(suite.ctx, suite.manager, testHotel, dto.ListTransactionsParams{Limit: 2})
	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 2)

	_, err = suite.service.ListTransactions(suite.ctx, suite.manager, testHotel, dto.ListTransactionsParams{Status: "lost"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.ListTransactions(suite.ctx, actorAs(domain.RoleWaiter, "w-1"), testHotel, dto.ListTransactionsParams{})
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestRecordTransaction_NoRoleLimitRowMeansUnlimited(t *testing.T) {
	repo := newFakeTxnRepo()
	roleLimits := services.NewRoleLimitService(newFakeRoleLimitRepo())
	svc := services.NewTransactionService(repo, roleLimits, nil, services.WithClock(fixedClock))

	txn, err := svc.RecordTransaction(context.Background(), actorAs(domain.RoleFinance, "fin-1"), testHotel, cashIn("1000000"))

	require.NoError(t, err)
	assert.Equal(t, domain.TxnPosted, txn.Status)
}
