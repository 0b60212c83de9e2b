package services

import (
	"context"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/SscSPs/hotel_ops_app/internal/dto"
	"github.com/jackc/pgx/v5"
)

// VoucherReaderSvc defines voucher lookups
type VoucherReaderSvc interface {
	// ValidateVoucher checks that the code can be used now, without using it.
	ValidateVoucher(ctx context.Context, hotelID, code string) (*domain.Voucher, error)

	ListVouchers(ctx context.Context, actor domain.Actor, hotelID string) ([]domain.Voucher, error)
}

// VoucherWriterSvc defines voucher issuing and redemption
type VoucherWriterSvc interface {
	CreateVoucher(ctx context.Context, actor domain.Actor, hotelID string, req dto.CreateVoucherRequest) (*domain.Voucher, error)

	// RedeemVoucher uses the voucher once for reference. Repeating a
	// reference succeeds without counting twice.
	RedeemVoucher(ctx context.Context, actor domain.Actor, hotelID, voucherID, reference string) (*domain.Voucher, error)

	// RedeemInTx performs the redemption inside the caller's transaction.
	// It reports whether a new redemption was recorded.
	RedeemInTx(ctx context.Context, tx pgx.Tx, actor domain.Actor, hotelID, voucherID, reference string) (bool, error)
}

// VoucherSvcFacade combines all voucher-related service interfaces
type VoucherSvcFacade interface {
	VoucherReaderSvc
	VoucherWriterSvc
}
