package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/hotel_ops_app/internal/apperrors"
	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/SscSPs/hotel_ops_app/internal/core/services"
	"github.com/SscSPs/hotel_ops_app/internal/dto"
)

func testVoucher(id, code string, maxUses, used int) domain.Voucher {
	return domain.Voucher{
		VoucherID:      id,
		HotelID:        testHotel,
		Code:           code,
		DiscountType:   domain.DiscountPercentage,
		DiscountAmount: dec("10"),
		MaxUses:        maxUses,
		UsedCount:      used,
		ValidUntil:     fixedNow.Add(24 * time.Hour),
		IsActive:       true,
	}
}

func TestValidateVoucher(t *testing.T) {
	expired := testVoucher("v-expired", "OLD", 5, 0)
	expired.ValidUntil = fixedNow.Add(-time.Minute)
	expiredAndUsed := testVoucher("v-both", "BOTH", 1, 1)
	expiredAndUsed.ValidUntil = fixedNow.Add(-time.Minute)
	inactive := testVoucher("v-inactive", "OFF", 5, 0)
	inactive.IsActive = false

	repo := newFakeVoucherRepo(
		testVoucher("v-ok", "SPRING10", 5, 0),
		testVoucher("v-full", "FULL", 2, 2),
		expired, expiredAndUsed, inactive,
	)
	svc := services.NewVoucherService(repo, services.WithClock(fixedClock))

	testCases := []struct {
		name string
		code string
		want error
	}{
		{name: "valid code normalized", code: " spring10 ", want: nil},
		{name: "unknown", code: "NOPE", want: apperrors.ErrNotFound},
		{name: "expired", code: "OLD", want: apperrors.ErrVoucherExpired},
		{name: "expired wins over exhausted", code: "BOTH", want: apperrors.ErrVoucherExpired},
		{name: "exhausted", code: "FULL", want: apperrors.ErrVoucherExhausted},
		{name: "inactive", code: "OFF", want: apperrors.ErrVoucherInactive},
		{name: "blank", code: "  ", want: apperrors.ErrValidation},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			voucher, err := svc.ValidateVoucher(context.Background(), testHotel, tc.code)
			if tc.want == nil {
				require.NoError(t, err)
				assert.Equal(t, "v-ok", voucher.VoucherID)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, 0, repo.vouchers["v-ok"].UsedCount, "validation never consumes a use")
}

func TestRedeemVoucher_ConcurrentSingleUse(t *testing.T) {
	repo := newFakeVoucherRepo(testVoucher("v-1", "ONCE", 1, 0))
	svc := services.NewVoucherService(repo, services.WithClock(fixedClock))
	cashier := actorAs(domain.RoleCashier, "cashier-1")

	const workers = 2
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.RedeemVoucher(context.Background(), cashier, testHotel, "v-1", fmt.Sprintf("bill-%d", i))
		}(i)
	}
	wg.Wait()

	succeeded, exhausted := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, apperrors.ErrVoucherExhausted):
			exhausted++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, exhausted)
	assert.Equal(t, 1, repo.vouchers["v-1"].UsedCount)
}

func TestRedeemVoucher_SameReferenceCountsOnce(t *testing.T) {
	repo := newFakeVoucherRepo(testVoucher("v-1", "TWICE", 3, 0))
	events := &recordingPublisher{}
	svc := services.NewVoucherService(repo, services.WithClock(fixedClock), services.WithEventPublisher(events))
	cashier := actorAs(domain.RoleCashier, "cashier-1")

	first, err := svc.RedeemVoucher(context.Background(), cashier, testHotel, "v-1", "bill-42")
	require.NoError(t, err)
	second, err := svc.RedeemVoucher(context.Background(), cashier, testHotel, "v-1", " bill-42 ")
	require.NoError(t, err)

	assert.Equal(t, 1, first.UsedCount)
	assert.Equal(t, 1, second.UsedCount)
	assert.Equal(t, []domain.EventName{domain.EventVoucherRedeemed}, events.names())
}

func TestRedeemVoucher_Rejections(t *testing.T) {
	expired := testVoucher("v-old", "OLD", 5, 0)
	expired.ValidUntil = fixedNow.Add(-time.Hour)
	repo := newFakeVoucherRepo(expired)
	svc := services.NewVoucherService(repo, services.WithClock(fixedClock))

	_, err := svc.RedeemVoucher(context.Background(), actorAs(domain.RoleCashier, "c-1"), testHotel, "v-old", "")
	assert.ErrorIs(t, err, apperrors.ErrVoucherExpired)

	_, err = svc.RedeemVoucher(context.Background(), actorAs(domain.RoleCashier, "c-1"), testHotel, "missing", "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.RedeemVoucher(context.Background(), actorAs(domain.RoleKitchen, "chef-1"), testHotel, "v-old", "")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestCreateVoucher(t *testing.T) {
	repo := newFakeVoucherRepo()
	svc := services.NewVoucherService(repo, services.WithClock(fixedClock))
	manager := actorAs(domain.RoleManager, "m-1")

	voucher, err := svc.CreateVoucher(context.Background(), manager, testHotel, dto.CreateVoucherRequest{
		Code:           " welcome5 ",
		DiscountType:   "fixed",
		DiscountAmount: dec("5"),
		MaxUses:        10,
		ValidUntil:     fixedNow.Add(48 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "WELCOME5", voucher.Code)
	assert.True(t, voucher.IsActive)
	assert.Zero(t, voucher.UsedCount)

	generated, err := svc.CreateVoucher(context.Background(), manager, testHotel, dto.CreateVoucherRequest{
		DiscountType:   "percentage",
		DiscountAmount: dec("15"),
		MaxUses:        1,
		ValidUntil:     fixedNow.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Len(t, generated.Code, 8)

	_, err = svc.CreateVoucher(context.Background(), manager, testHotel, dto.CreateVoucherRequest{
		Code: "WELCOME5", DiscountType: "fixed", DiscountAmount: dec("5"), MaxUses: 1, ValidUntil: fixedNow.Add(time.Hour),
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestCreateVoucher_Validation(t *testing.T) {
	svc := services.NewVoucherService(newFakeVoucherRepo(), services.WithClock(fixedClock))
	manager := actorAs(domain.RoleManager, "m-1")
	base := dto.CreateVoucherRequest{DiscountType: "percentage", DiscountAmount: dec("10"), MaxUses: 1, ValidUntil: fixedNow.Add(time.Hour)}

	testCases := []struct {
		name   string
		mutate func(r *dto.CreateVoucherRequest)
		actor  domain.Actor
		want   error
	}{
		{name: "percentage above 100", mutate: func(r *dto.CreateVoucherRequest) { r.DiscountAmount = dec("101") }, actor: manager, want: apperrors.ErrValidation},
		{name: "zero max uses", mutate: func(r *dto.CreateVoucherRequest) { r.MaxUses = 0 }, actor: manager, want: apperrors.ErrValidation},
		{name: "already expired", mutate: func(r *dto.CreateVoucherRequest) { r.ValidUntil = fixedNow.Add(-time.Hour) }, actor: manager, want: apperrors.ErrValidation},
		{name: "unknown discount type", mutate: func(r *dto.CreateVoucherRequest) { r.DiscountType = "bogo" }, actor: manager, want: apperrors.ErrValidation},
		{name: "waiter cannot issue", mutate: func(r *dto.CreateVoucherRequest) {}, actor: actorAs(domain.RoleWaiter, "w-1"), want: apperrors.ErrForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)
			_, err := svc.CreateVoucher(context.Background(), tc.actor, testHotel, req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
