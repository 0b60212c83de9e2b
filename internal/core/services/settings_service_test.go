package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/hotel_ops_app/internal/apperrors"
	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_ops_app/internal/core/ports/repositories"
	"github.com/SscSPs/hotel_ops_app/internal/core/services"
	"github.com/SscSPs/hotel_ops_app/internal/dto"
)

// --- Mock RoleLimitRepository ---
type MockRoleLimitRepository struct {
	mock.Mock
}

var _ portsrepo.RoleLimitRepository = (*MockRoleLimitRepository)(nil)

func (m *MockRoleLimitRepository) FindRoleLimit(ctx context.Context, hotelID string, role domain.Role) (*domain.RoleLimit, error) {
	args := m.Called(ctx, hotelID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoleLimit), args.Error(1)
}

func (m *MockRoleLimitRepository) ListRoleLimits(ctx context.Context, hotelID string) ([]domain.RoleLimit, error) {
	args := m.Called(ctx, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RoleLimit), args.Error(1)
}

func (m *MockRoleLimitRepository) UpsertRoleLimit(ctx context.Context, limit domain.RoleLimit) error {
	args := m.Called(ctx, limit)
	return args.Error(0)
}

func TestGetRoleLimit(t *testing.T) {
	ctx := context.Background()

	t.Run("configured row", func(t *testing.T) {
		repo := new(MockRoleLimitRepository)
		stored := &domain.RoleLimit{HotelID: testHotel, Role: domain.RoleCashier, MaxTransactionAmount: decPtr("500")}
		repo.On("FindRoleLimit", ctx, testHotel, domain.RoleCashier).Return(stored, nil).Once()
		svc := services.NewRoleLimitService(repo)

		limit, err := svc.GetRoleLimit(ctx, testHotel, domain.RoleCashier)

		require.NoError(t, err)
		assert.Equal(t, "500", limit.MaxTransactionAmount.String())
		repo.AssertExpectations(t)
	})

	t.Run("missing row means no limits", func(t *testing.T) {
		repo := new(MockRoleLimitRepository)
		repo.On("FindRoleLimit", ctx, testHotel, domain.RoleWaiter).Return(nil, apperrors.ErrNotFound).Once()
		svc := services.NewRoleLimitService(repo)

		limit, err := svc.GetRoleLimit(ctx, testHotel, domain.RoleWaiter)

		require.NoError(t, err)
		assert.Nil(t, limit.MaxTransactionAmount)
		assert.Nil(t, limit.MaxDailyAmount)
		assert.False(t, limit.CanVoidTransactions)
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		repo := new(MockRoleLimitRepository)
		failure := apperrors.NewAppError(500, "database error", assert.AnError)
		repo.On("FindRoleLimit", ctx, testHotel, domain.RoleWaiter).Return(nil, failure).Once()
		svc := services.NewRoleLimitService(repo)

		_, err := svc.GetRoleLimit(ctx, testHotel, domain.RoleWaiter)

		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestUpsertRoleLimit(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRoleLimitRepository)
	repo.On("UpsertRoleLimit", ctx, mock.MatchedBy(func(l domain.RoleLimit) bool {
		return l.Role == domain.RoleCashier && l.MaxDailyAmount != nil && l.MaxDailyAmount.Equal(dec("1000")) && l.CanVoidTransactions
	})).Return(nil).Once()
	svc := services.NewRoleLimitService(repo, services.WithClock(fixedClock))

	limit, err := svc.UpsertRoleLimit(ctx, actorAs(domain.RoleOwner, "owner-1"), testHotel, domain.RoleCashier, dto.UpsertRoleLimitRequest{
		MaxDailyAmount:      decPtr("1000"),
		CanVoidTransactions: true,
	})
	require.NoError(t, err)
	assert.Nil(t, limit.MaxTransactionAmount)
	repo.AssertExpectations(t)

	_, err = svc.UpsertRoleLimit(ctx, actorAs(domain.RoleManager, "m-1"), testHotel, domain.RoleCashier, dto.UpsertRoleLimitRequest{})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.UpsertRoleLimit(ctx, actorAs(domain.RoleOwner, "owner-1"), testHotel, domain.RoleCashier, dto.UpsertRoleLimitRequest{MaxTransactionAmount: decPtr("-1")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.UpsertRoleLimit(ctx, actorAs(domain.RoleOwner, "owner-1"), testHotel, "astronaut", dto.UpsertRoleLimitRequest{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestListRoleLimits_Authorization(t *testing.T) {
	svc := services.NewRoleLimitService(newFakeRoleLimitRepo(domain.RoleLimit{HotelID: testHotel, Role: domain.RoleCashier}))

	limits, err := svc.ListRoleLimits(context.Background(), actorAs(domain.RoleManager, "m-1"), testHotel)
	require.NoError(t, err)
	assert.Len(t, limits, 1)

	_, err = svc.ListRoleLimits(context.Background(), actorAs(domain.RoleCashier, "c-1"), testHotel)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestUpsertTaxSetting(t *testing.T) {
	repo := &fakeTaxRepo{}
	svc := services.NewTaxService(repo, services.WithClock(fixedClock))
	owner := actorAs(domain.RoleOwner, "owner-1")
	ctx := context.Background()

	first, err := svc.UpsertTaxSetting(ctx, owner, testHotel, domain.TaxVAT, dto.UpsertTaxSettingRequest{Label: "VAT", Percent: dec("13")})
	require.NoError(t, err)
	assert.True(t, first.IsActive)

	inactive := false
	updated, err := svc.UpsertTaxSetting(ctx, owner, testHotel, domain.TaxVAT, dto.UpsertTaxSettingRequest{Label: "VAT", Percent: dec("13"), IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID, "updates keep the insertion id")
	assert.False(t, updated.IsActive)

	_, err = svc.UpsertTaxSetting(ctx, owner, testHotel, "Green Tax", dto.UpsertTaxSettingRequest{Label: "Green", Percent: dec("1")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.UpsertTaxSetting(ctx, owner, testHotel, "green_tax", dto.UpsertTaxSettingRequest{Label: "Green", Percent: dec("120")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.UpsertTaxSetting(ctx, actorAs(domain.RoleManager, "m-1"), testHotel, "green_tax", dto.UpsertTaxSettingRequest{Label: "Green", Percent: dec("1")})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	settings, err := svc.ListTaxSettings(ctx, testHotel)
	require.NoError(t, err)
	assert.Len(t, settings, 1)
}

func TestUpsertTaxSetting_ActiveLabelsAreUnique(t *testing.T) {
	repo := &fakeTaxRepo{}
	svc := services.NewTaxService(repo, services.WithClock(fixedClock))
	owner := actorAs(domain.RoleOwner, "owner-1")
	ctx := context.Background()

	_, err := svc.UpsertTaxSetting(ctx, owner, testHotel, domain.TaxVAT, dto.UpsertTaxSettingRequest{Label: "VAT", Percent: dec("13")})
	require.NoError(t, err)

	_, err = svc.UpsertTaxSetting(ctx, owner, testHotel, "vat_extra", dto.UpsertTaxSettingRequest{Label: "vat ", Percent: dec("2")})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	inactive := false
	_, err = svc.UpsertTaxSetting(ctx, owner, testHotel, "vat_extra", dto.UpsertTaxSettingRequest{Label: "VAT", Percent: dec("2"), IsActive: &inactive})
	require.NoError(t, err, "an inactive tax may share the label")

	_, err = svc.UpsertTaxSetting(ctx, owner, testHotel, domain.TaxVAT, dto.UpsertTaxSettingRequest{Label: "VAT", Percent: dec("15")})
	require.NoError(t, err, "a tax may keep its own label")

	settings, err := svc.ListTaxSettings(ctx, testHotel)
	require.NoError(t, err)
	totals := domain.TaxBreakdown{}
	for _, s := range domain.SortTaxes(settings) {
		totals = append(totals, domain.TaxLine{TaxType: s.TaxType, Label: s.Label, Rate: s.Percent})
	}
	byLabel, order := totals.ByLabel()
	assert.Len(t, byLabel, len(totals))
	assert.Equal(t, []string{"VAT"}, order)
}
