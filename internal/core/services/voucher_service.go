package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/hotel_ops_app/internal/apperrors"
	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_ops_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hotel_ops_app/internal/core/ports/services"
	"github.com/SscSPs/hotel_ops_app/internal/dto"
	"github.com/SscSPs/hotel_ops_app/internal/utils"
)

// generatedCodeLength is the size of codes issued when none is supplied.
const generatedCodeLength = 8

type voucherService struct {
	BaseService
	repo portsrepo.VoucherRepositoryWithTx
}

// NewVoucherService creates a new VoucherService.
func NewVoucherService(repo portsrepo.VoucherRepositoryWithTx, options ...ServiceOption) portssvc.VoucherSvcFacade {
	svc := &voucherService{repo: repo}
	svc.apply(options)
	return svc
}

var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

// ValidateVoucher reports the first reason the code cannot be used in the
// order not found, expired, exhausted, inactive. Nothing is modified.
func (s *voucherService) ValidateVoucher(ctx context.Context, hotelID, code string) (*domain.Voucher, error) {
	normalized := domain.NormalizeVoucherCode(code)
	if normalized == "" {
		return nil, fmt.Errorf("%w: voucher code is required", apperrors.ErrValidation)
	}
	voucher, err := s.repo.FindVoucherByCode(ctx, hotelID, normalized)
	if err != nil {
		s.LogFailure(ctx, err, "Voucher lookup failed", slog.String("code", normalized))
		return nil, err
	}
	if err := voucher.CheckRedeemable(s.Now()); err != nil {
		s.LogDebug(ctx, "Voucher not redeemable", slog.String("code", normalized), slog.String("reason", err.Error()))
		return nil, fmt.Errorf("voucher %s: %w", normalized, err)
	}
	return voucher, nil
}

func (s *voucherService) ListVouchers(ctx context.Context, actor domain.Actor, hotelID string) ([]domain.Voucher, error) {
	if !actor.Can(domain.CapManageVouchers) {
		return nil, apperrors.ErrForbidden
	}
	return s.repo.ListVouchers(ctx, hotelID)
}

// CreateVoucher issues a new voucher. An empty code is generated.
func (s *voucherService) CreateVoucher(ctx context.Context, actor domain.Actor, hotelID string, req dto.CreateVoucherRequest) (*domain.Voucher, error) {
	if !actor.Can(domain.CapManageVouchers) {
		return nil, apperrors.ErrForbidden
	}

	discountType := domain.DiscountType(req.DiscountType)
	if !discountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown discount type %q", apperrors.ErrValidation, req.DiscountType)
	}
	if !req.DiscountAmount.IsPositive() || !req.DiscountAmount.Equal(req.DiscountAmount.Round(2)) {
		return nil, fmt.Errorf("%w: discount amount must be positive with at most 2 decimal places", apperrors.ErrValidation)
	}
	if discountType == domain.DiscountPercentage && req.DiscountAmount.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("%w: percentage discount cannot exceed 100", apperrors.ErrValidation)
	}
	if req.MaxUses < 1 {
		return nil, fmt.Errorf("%w: maxUses must be at least 1", apperrors.ErrValidation)
	}
	now := s.Now()
	if !req.ValidUntil.After(now) {
		return nil, fmt.Errorf("%w: validUntil must be in the future", apperrors.ErrValidation)
	}

	code := domain.NormalizeVoucherCode(req.Code)
	if code == "" {
		generated, err := utils.GenerateVoucherCode(generatedCodeLength)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to generate voucher code", err)
		}
		code = generated
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	voucher := domain.Voucher{
		VoucherID:      uuid.NewString(),
		HotelID:        hotelID,
		Code:           code,
		DiscountType:   discountType,
		DiscountAmount: req.DiscountAmount,
		MaxUses:        req.MaxUses,
		ValidUntil:     req.ValidUntil.UTC(),
		IsActive:       isActive,
		AuditFields:    domain.NewAuditFields(actor.UserID, now),
	}
	if err := s.repo.SaveVoucher(ctx, voucher); err != nil {
		s.LogFailure(ctx, err, "Failed to save voucher", slog.String("code", code))
		return nil, err
	}
	s.LogInfo(ctx, "Voucher created", slog.String("voucher_id", voucher.VoucherID), slog.String("code", code))
	return &voucher, nil
}

// RedeemVoucher uses the voucher once under reference in its own transaction.
func (s *voucherService) RedeemVoucher(ctx context.Context, actor domain.Actor, hotelID, voucherID, reference string) (*domain.Voucher, error) {
	if !actor.Can(domain.CapFinalizeBill) {
		return nil, apperrors.ErrForbidden
	}
	reference = strings.TrimSpace(reference)
	if reference == "" {
		reference = uuid.NewString()
	}

	var redeemed bool
	err := s.RetryOnConflict(ctx, "voucher redeem", func() error {
		tx, err := s.repo.Begin(ctx)
		if err != nil {
			return err
		}
		defer s.repo.Rollback(ctx, tx)

		redeemed, err = s.RedeemInTx(ctx, tx, actor, hotelID, voucherID, reference)
		if err != nil {
			return err
		}
		return s.repo.Commit(ctx, tx)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Voucher redemption failed", slog.String("voucher_id", voucherID), slog.String("reference", reference))
		return nil, err
	}

	voucher, err := s.repo.FindVoucherByID(ctx, hotelID, voucherID)
	if err != nil {
		return nil, err
	}
	if redeemed {
		s.LogInfo(ctx, "Voucher redeemed", slog.String("voucher_id", voucherID), slog.String("reference", reference))
		s.Publish(ctx, s.redeemedEvent(actor, voucher, reference))
	}
	return voucher, nil
}

// RedeemInTx records the redemption and bumps the usage counter inside tx.
// A reference seen before is a successful no-op.
func (s *voucherService) RedeemInTx(ctx context.Context, tx pgx.Tx, actor domain.Actor, hotelID, voucherID, reference string) (bool, error) {
	now := s.Now()
	inserted, err := s.repo.InsertRedemption(ctx, tx, domain.VoucherRedemption{
		VoucherID:  voucherID,
		Reference:  reference,
		RedeemedBy: actor.UserID,
		RedeemedAt: now,
	})
	if err != nil {
		return false, err
	}
	if !inserted {
		return false, nil
	}

	updated, err := s.repo.IncrementUsage(ctx, tx, hotelID, voucherID, now)
	if err != nil {
		return false, err
	}
	if !updated {
		return false, s.classifyRejection(ctx, hotelID, voucherID, now)
	}
	return true, nil
}

// classifyRejection explains why the conditional increment matched no row.
func (s *voucherService) classifyRejection(ctx context.Context, hotelID, voucherID string, now time.Time) error {
	voucher, err := s.repo.FindVoucherByID(ctx, hotelID, voucherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: voucher %s", apperrors.ErrNotFound, voucherID)
		}
		return err
	}
	if err := voucher.CheckRedeemable(now); err != nil {
		return fmt.Errorf("voucher %s: %w", voucher.Code, err)
	}
	return fmt.Errorf("%w: voucher %s changed during redemption", apperrors.ErrConcurrencyConflict, voucher.Code)
}

func (s *voucherService) redeemedEvent(actor domain.Actor, voucher *domain.Voucher, reference string) domain.Event {
	return domain.Event{
		Name:     domain.EventVoucherRedeemed,
		HotelID:  voucher.HotelID,
		EntityID: voucher.VoucherID,
		ActorID:  actor.UserID,
		Payload: map[string]any{
			"voucher":   dto.ToVoucherResponse(voucher),
			"reference": reference,
		},
	}
}
