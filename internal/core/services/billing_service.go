package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/hotel_ops_app/internal/apperrors"
	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_ops_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hotel_ops_app/internal/core/ports/services"
	"github.com/SscSPs/hotel_ops_app/internal/dto"
	"github.com/SscSPs/hotel_ops_app/internal/utils/billing"
)

// billingService computes and settles table bills.
type billingService struct {
	BaseService
	orderRepo  portsrepo.OrderRepositoryWithTx
	taxRepo    portsrepo.TaxSettingRepository
	billRepo   portsrepo.BillRepository
	voucherSvc portssvc.VoucherSvcFacade
	txnSvc     portssvc.TransactionSvcFacade
}

// NewBillingService creates a new BillingService.
func NewBillingService(
	orderRepo portsrepo.OrderRepositoryWithTx,
	taxRepo portsrepo.TaxSettingRepository,
	billRepo portsrepo.BillRepository,
	voucherSvc portssvc.VoucherSvcFacade,
	txnSvc portssvc.TransactionSvcFacade,
	options ...ServiceOption,
) portssvc.BillingSvcFacade {
	svc := &billingService{
		orderRepo:  orderRepo,
		taxRepo:    taxRepo,
		billRepo:   billRepo,
		voucherSvc: voucherSvc,
		txnSvc:     txnSvc,
	}
	svc.apply(options)
	return svc
}

var _ portssvc.BillingSvcFacade = (*billingService)(nil)

func parsePolicy(raw string) (domain.BillingPolicy, error) {
	if raw == "" {
		return domain.PolicyTableCheck, nil
	}
	policy := domain.BillingPolicy(raw)
	if !policy.IsValid() {
		return "", fmt.Errorf("%w: unknown billing policy %q", apperrors.ErrValidation, raw)
	}
	return policy, nil
}

func eligibleItems(items []domain.OrderItem, policy domain.BillingPolicy) []domain.OrderItem {
	eligible := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		if policy.IsEligible(item) {
			eligible = append(eligible, item)
		}
	}
	return eligible
}

// unbillableItems lists items that would be stranded by closing the order now.
func unbillableItems(items []domain.OrderItem, policy domain.BillingPolicy) []string {
	var blocked []string
	for _, item := range items {
		if policy.BlocksSettlement(item) {
			blocked = append(blocked, fmt.Sprintf("%s (%s)", item.ItemID, item.Status))
		}
	}
	return blocked
}

func (s *billingService) lookupVoucher(ctx context.Context, hotelID, code string) (*domain.Voucher, error) {
	if strings.TrimSpace(code) == "" {
		return nil, nil
	}
	return s.voucherSvc.ValidateVoucher(ctx, hotelID, code)
}

// PreviewBill computes what the bill would be now. Nothing is written.
func (s *billingService) PreviewBill(ctx context.Context, hotelID, orderID string, policy domain.BillingPolicy, voucherCode string) (*domain.BillTotals, error) {
	policy, err := parsePolicy(string(policy))
	if err != nil {
		return nil, err
	}
	order, err := s.orderRepo.FindOrderByID(ctx, hotelID, orderID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to load order for bill preview", slog.String("order_id", orderID))
		return nil, err
	}
	taxes, err := s.taxRepo.ListTaxSettings(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	voucher, err := s.lookupVoucher(ctx, hotelID, voucherCode)
	if err != nil {
		return nil, err
	}

	totals, err := billing.CalculateBill(eligibleItems(order.Items, policy), taxes, voucher)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to calculate bill", err)
	}
	s.LogDebug(ctx, "Bill preview computed", slog.String("order_id", orderID), slog.String("grand_total", totals.GrandTotal.StringFixed(2)))
	return &totals, nil
}

// FinalizeBill settles the order. Locking the order, redeeming the voucher,
// recording payment, marking items, storing the bill and closing the order
// all commit together or not at all. Replaying a bill id returns the stored
// bill.
func (s *billingService) FinalizeBill(ctx context.Context, actor domain.Actor, hotelID, orderID string, req dto.FinalizeBillRequest) (*domain.Bill, bool, error) {
	if !actor.Can(domain.CapFinalizeBill) {
		s.LogWarn(ctx, apperrors.ErrForbidden, "Actor cannot finalize bills", slog.String("order_id", orderID))
		return nil, false, apperrors.ErrForbidden
	}
	policy, err := parsePolicy(req.Policy)
	if err != nil {
		return nil, false, err
	}
	paymentMethod := domain.PaymentMethod(req.PaymentMethod)
	if !paymentMethod.IsValid() {
		return nil, false, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, req.PaymentMethod)
	}

	billID := strings.TrimSpace(req.BillID)
	if billID == "" {
		billID = uuid.NewString()
	} else if existing, err := s.replay(ctx, hotelID, orderID, billID); err != nil || existing != nil {
		return existing, false, err
	}

	voucher, err := s.lookupVoucher(ctx, hotelID, req.VoucherCode)
	if err != nil {
		return nil, false, err
	}

	var bill *domain.Bill
	var payment *domain.Transaction
	err = s.RetryOnConflict(ctx, "finalize bill", func() error {
		bill, payment, err = s.finalizeInTx(ctx, actor, hotelID, orderID, billID, policy, paymentMethod, voucher)
		return err
	})
	if errors.Is(err, apperrors.ErrDuplicate) || errors.Is(err, apperrors.ErrConflict) {
		// A request with the same bill id may have committed while this one
		// waited for the order lock.
		existing, replayErr := s.replay(ctx, hotelID, orderID, billID)
		if replayErr == nil && existing != nil {
			return existing, false, nil
		}
	}
	if err != nil {
		s.LogFailure(ctx, err, "Failed to finalize bill", slog.String("order_id", orderID), slog.String("bill_id", billID))
		return nil, false, err
	}

	s.LogInfo(ctx, "Bill finalized",
		slog.String("order_id", orderID),
		slog.String("bill_id", bill.BillID),
		slog.String("grand_total", bill.GrandTotal.StringFixed(2)))

	events := []domain.Event{{
		Name:     domain.EventBillFinalized,
		HotelID:  hotelID,
		EntityID: bill.BillID,
		ActorID:  actor.UserID,
		Payload:  dto.ToBillResponse(bill),
	}}
	if voucher != nil {
		events = append(events, domain.Event{
			Name:     domain.EventVoucherRedeemed,
			HotelID:  hotelID,
			EntityID: voucher.VoucherID,
			ActorID:  actor.UserID,
			Payload:  map[string]any{"voucherID": voucher.VoucherID, "code": voucher.Code, "reference": bill.BillID},
		})
	}
	if payment != nil {
		events = append(events, transactionEvent(domain.EventTransactionCreated, actor, payment))
	}
	s.Publish(ctx, events...)
	return bill, true, nil
}

// replay returns the stored bill for billID, or nil when there is none.
func (s *billingService) replay(ctx context.Context, hotelID, orderID, billID string) (*domain.Bill, error) {
	existing, err := s.billRepo.FindBillByID(ctx, nil, hotelID, billID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if existing.OrderID != orderID {
		return nil, fmt.Errorf("%w: bill id %s belongs to another order", apperrors.ErrConflict, billID)
	}
	s.LogInfo(ctx, "Replaying finalized bill", slog.String("bill_id", billID))
	return existing, nil
}

func (s *billingService) finalizeInTx(
	ctx context.Context,
	actor domain.Actor,
	hotelID, orderID, billID string,
	policy domain.BillingPolicy,
	paymentMethod domain.PaymentMethod,
	voucher *domain.Voucher,
) (*domain.Bill, *domain.Transaction, error) {
	tx, err := s.orderRepo.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer s.orderRepo.Rollback(ctx, tx)

	order, err := s.orderRepo.LockOrder(ctx, tx, hotelID, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order.Status != domain.OrderOpen {
		return nil, nil, fmt.Errorf("%w: order %s is already closed", apperrors.ErrConflict, orderID)
	}

	items, err := s.orderRepo.FindOrderItemsForUpdate(ctx, tx, hotelID, orderID)
	if err != nil {
		return nil, nil, err
	}
	if blocked := unbillableItems(items, policy); len(blocked) > 0 {
		return nil, nil, fmt.Errorf("%w: order %s has items that cannot be billed under %s yet: %s",
			apperrors.ErrConflict, orderID, policy, strings.Join(blocked, ", "))
	}
	eligible := eligibleItems(items, policy)
	if len(eligible) == 0 {
		return nil, nil, fmt.Errorf("%w: empty bill", apperrors.ErrValidation)
	}

	taxes, err := s.taxRepo.ListTaxSettings(ctx, hotelID)
	if err != nil {
		return nil, nil, err
	}
	totals, err := billing.CalculateBill(eligible, taxes, voucher)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to calculate bill", err)
	}

	var voucherID *string
	if voucher != nil {
		if _, err := s.voucherSvc.RedeemInTx(ctx, tx, actor, hotelID, voucher.VoucherID, billID); err != nil {
			return nil, nil, err
		}
		voucherID = &voucher.VoucherID
	}

	var payment *domain.Transaction
	var transactionID *string
	if totals.GrandTotal.IsPositive() {
		payment, err = s.txnSvc.RecordInTx(ctx, tx, actor, hotelID, domain.NewTransaction{
			Amount:        totals.GrandTotal,
			TxnType:       paymentMethod.IncomingTxnType(),
			PaymentMethod: paymentMethod,
			Purpose:       "Bill for table " + order.TableNumber,
			Reference:     billID,
		})
		if err != nil {
			return nil, nil, err
		}
		transactionID = &payment.TransactionID
	}

	now := s.Now()
	itemIDs := make([]string, len(eligible))
	for i, item := range eligible {
		itemIDs[i] = item.ItemID
	}
	if err := s.orderRepo.MarkItemsBilled(ctx, tx, hotelID, billID, itemIDs, policy == domain.PolicyTableCheck, actor.UserID, now); err != nil {
		return nil, nil, err
	}

	bill := domain.Bill{
		BillID:        billID,
		HotelID:       hotelID,
		OrderID:       orderID,
		Policy:        policy,
		VoucherID:     voucherID,
		TransactionID: transactionID,
		PaymentMethod: paymentMethod,
		ItemIDs:       itemIDs,
		CreatedBy:     actor.UserID,
		CreatedAt:     now,
		BillTotals:    totals,
	}
	if err := s.billRepo.SaveBill(ctx, tx, bill); err != nil {
		return nil, nil, err
	}
	if err := s.orderRepo.CloseOrder(ctx, tx, hotelID, orderID, actor.UserID, now); err != nil {
		return nil, nil, err
	}
	if err := s.orderRepo.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return &bill, payment, nil
}
