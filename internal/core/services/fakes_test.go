package services_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/hotel_ops_app/internal/apperrors"
	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_ops_app/internal/core/ports/repositories"
)

// noTx satisfies TransactionManager without a database. Writes applied by the
// fakes are not undone on rollback.
type noTx struct{}

func (noTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (noTx) Commit(ctx context.Context, tx pgx.Tx) error { return nil }
func (noTx) Rollback(ctx context.Context, tx pgx.Tx) error { return nil }

// --- Orders ---

type fakeOrderRepo struct {
	noTx
	mu     sync.Mutex
	orders map[string]domain.Order
	items  map[string]domain.OrderItem
	seq    []string
}

var _ portsrepo.OrderRepositoryWithTx = (*fakeOrderRepo)(nil)

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]domain.Order{}, items: map[string]domain.OrderItem{}}
}

func (r *fakeOrderRepo) orderItems(orderID string) []domain.OrderItem {
	var out []domain.OrderItem
	for _, id := range r.seq {
		if item := r.items[id]; item.OrderID == orderID {
			out = append(out, item)
		}
	}
	return out
}

func (r *fakeOrderRepo) FindOrderByID(ctx context.Context, hotelID, orderID string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok || order.HotelID != hotelID {
		return nil, apperrors.ErrNotFound
	}
	order.Items = r.orderItems(orderID)
	return &order, nil
}

func (r *fakeOrderRepo) FindOrderItemByID(ctx context.Context, hotelID, itemID string) (*domain.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok || item.HotelID != hotelID {
		return nil, apperrors.ErrNotFound
	}
	return &item, nil
}

func (r *fakeOrderRepo) SaveOrder(ctx context.Context, tx pgx.Tx, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order.Items = nil
	r.orders[order.OrderID] = order
	return nil
}

func (r *fakeOrderRepo) SaveOrderItems(ctx context.Context, tx pgx.Tx, items []domain.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		r.items[item.ItemID] = item
		r.seq = append(r.seq, item.ItemID)
	}
	return nil
}

func (r *fakeOrderRepo) CompareAndSetItemStatus(ctx context.Context, hotelID, itemID string, expected, next domain.OrderItemStatus, declineReason *string, userID string, at time.Time) (*domain.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok || item.HotelID != hotelID || item.Status != expected {
		return nil, nil
	}
	item.Status = next
	if declineReason != nil {
		item.DeclineReason = declineReason
	}
	item.LastUpdatedBy = userID
	item.LastUpdatedAt = at
	item.Version++
	r.items[itemID] = item
	return &item, nil
}

func (r *fakeOrderRepo) LockOrder(ctx context.Context, tx pgx.Tx, hotelID, orderID string) (*domain.Order, error) {
	return r.FindOrderByID(ctx, hotelID, orderID)
}

func (r *fakeOrderRepo) FindOrderItemsForUpdate(ctx context.Context, tx pgx.Tx, hotelID, orderID string) ([]domain.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orderItems(orderID), nil
}

func (r *fakeOrderRepo) MarkItemsBilled(ctx context.Context, tx pgx.Tx, hotelID, billID string, itemIDs []string, complete bool, userID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range itemIDs {
		item := r.items[id]
		if item.BillID != nil {
			return apperrors.ErrConcurrencyConflict
		}
		item.BillID = &billID
		if complete && (item.Status == domain.ItemApproved || item.Status == domain.ItemReady) {
			item.Status = domain.ItemCompleted
		}
		r.items[id] = item
	}
	return nil
}

func (r *fakeOrderRepo) CloseOrder(ctx context.Context, tx pgx.Tx, hotelID, orderID, userID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order := r.orders[orderID]
	order.Status = domain.OrderClosed
	r.orders[orderID] = order
	return nil
}

// --- Taxes, role limits, bills ---

type fakeTaxRepo struct {
	mu       sync.Mutex
	settings []domain.TaxSetting
}

func (r *fakeTaxRepo) ListTaxSettings(ctx context.Context, hotelID string) ([]domain.TaxSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.TaxSetting(nil), r.settings...), nil
}

func (r *fakeTaxRepo) UpsertTaxSetting(ctx context.Context, setting domain.TaxSetting) (*domain.TaxSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.settings {
		if existing.TaxType == setting.TaxType {
			setting.ID = existing.ID
			r.settings[i] = setting
			return &setting, nil
		}
	}
	setting.ID = int64(len(r.settings) + 1)
	r.settings = append(r.settings, setting)
	return &setting, nil
}

type fakeRoleLimitRepo struct {
	mu     sync.Mutex
	limits map[domain.Role]domain.RoleLimit
}

func newFakeRoleLimitRepo(limits ...domain.RoleLimit) *fakeRoleLimitRepo {
	r := &fakeRoleLimitRepo{limits: map[domain.Role]domain.RoleLimit{}}
	for _, l := range limits {
		r.limits[l.Role] = l
	}
	return r
}

func (r *fakeRoleLimitRepo) FindRoleLimit(ctx context.Context, hotelID string, role domain.Role) (*domain.RoleLimit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	limit, ok := r.limits[role]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &limit, nil
}

func (r *fakeRoleLimitRepo) ListRoleLimits(ctx context.Context, hotelID string) ([]domain.RoleLimit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.RoleLimit, 0, len(r.limits))
	for _, l := range r.limits {
		out = append(out, l)
	}
	return out, nil
}

func (r *fakeRoleLimitRepo) UpsertRoleLimit(ctx context.Context, limit domain.RoleLimit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.limits[limit.Role] = limit
	return nil
}

type fakeBillRepo struct {
	mu    sync.Mutex
	bills map[string]domain.Bill
}

func newFakeBillRepo() *fakeBillRepo {
	return &fakeBillRepo{bills: map[string]domain.Bill{}}
}

func (r *fakeBillRepo) FindBillByID(ctx context.Context, tx pgx.Tx, hotelID, billID string) (*domain.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bill, ok := r.bills[billID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &bill, nil
}

func (r *fakeBillRepo) SaveBill(ctx context.Context, tx pgx.Tx, bill domain.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bills[bill.BillID]; ok {
		return apperrors.ErrDuplicate
	}
	r.bills[bill.BillID] = bill
	return nil
}

// --- Vouchers ---

type fakeVoucherRepo struct {
	noTx
	mu          sync.Mutex
	vouchers    map[string]domain.Voucher
	redemptions map[string]domain.VoucherRedemption
}

var _ portsrepo.VoucherRepositoryWithTx = (*fakeVoucherRepo)(nil)

func newFakeVoucherRepo(vouchers ...domain.Voucher) *fakeVoucherRepo {
	r := &fakeVoucherRepo{vouchers: map[string]domain.Voucher{}, redemptions: map[string]domain.VoucherRedemption{}}
	for _, v := range vouchers {
		r.vouchers[v.VoucherID] = v
	}
	return r
}

func (r *fakeVoucherRepo) FindVoucherByCode(ctx context.Context, hotelID, code string) (*domain.Voucher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.vouchers {
		if v.HotelID == hotelID && v.Code == code {
			return &v, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeVoucherRepo) FindVoucherByID(ctx context.Context, hotelID, voucherID string) (*domain.Voucher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vouchers[voucherID]
	if !ok || v.HotelID != hotelID {
		return nil, apperrors.ErrNotFound
	}
	return &v, nil
}

func (r *fakeVoucherRepo) ListVouchers(ctx context.Context, hotelID string) ([]domain.Voucher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Voucher
	for _, v := range r.vouchers {
		if v.HotelID == hotelID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeVoucherRepo) SaveVoucher(ctx context.Context, voucher domain.Voucher) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.vouchers {
		if v.HotelID == voucher.HotelID && v.Code == voucher.Code {
			return apperrors.ErrDuplicate
		}
	}
	r.vouchers[voucher.VoucherID] = voucher
	return nil
}

func (r *fakeVoucherRepo) InsertRedemption(ctx context.Context, tx pgx.Tx, redemption domain.VoucherRedemption) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := redemption.VoucherID + "|" + redemption.Reference
	if _, ok := r.redemptions[key]; ok {
		return false, nil
	}
	r.redemptions[key] = redemption
	return true, nil
}

func (r *fakeVoucherRepo) IncrementUsage(ctx context.Context, tx pgx.Tx, hotelID, voucherID string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vouchers[voucherID]
	if !ok || v.HotelID != hotelID || !v.IsActive || now.After(v.ValidUntil) || v.UsedCount >= v.MaxUses {
		return false, nil
	}
	v.UsedCount++
	r.vouchers[voucherID] = v
	return true, nil
}

// --- Transactions ---

type fakeTxnRepo struct {
	noTx
	mu   sync.Mutex
	txns map[string]domain.Transaction
}

var _ portsrepo.TransactionRepositoryWithTx = (*fakeTxnRepo)(nil)

func newFakeTxnRepo() *fakeTxnRepo {
	return &fakeTxnRepo{txns: map[string]domain.Transaction{}}
}

func (r *fakeTxnRepo) FindTransactionByID(ctx context.Context, hotelID, txnID string) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	txn, ok := r.txns[txnID]
	if !ok || txn.HotelID != hotelID {
		return nil, apperrors.ErrNotFound
	}
	return &txn, nil
}

func (r *fakeTxnRepo) ListTransactions(ctx context.Context, hotelID string, status *domain.TxnStatus, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Transaction
	for _, txn := range r.txns {
		if txn.HotelID == hotelID && (status == nil || txn.Status == *status) {
			out = append(out, txn)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil, nil
}

func (r *fakeTxnRepo) SumCountedAmount(ctx context.Context, tx pgx.Tx, hotelID, userID string, from, to time.Time) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, txn := range r.txns {
		if txn.HotelID != hotelID || txn.CreatedBy != userID || !txn.Status.CountsTowardBalance() {
			continue
		}
		if txn.CreatedAt.Before(from) || !txn.CreatedAt.Before(to) {
			continue
		}
		total = total.Add(txn.Amount)
	}
	return total, nil
}

func (r *fakeTxnRepo) LockDailyTotal(ctx context.Context, tx pgx.Tx, hotelID, userID string, day time.Time) error {
	return nil
}

func (r *fakeTxnRepo) SaveTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txns[txn.TransactionID] = txn
	return nil
}

func (r *fakeTxnRepo) TransitionTransaction(ctx context.Context, change domain.TxnStatusChange) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	txn, ok := r.txns[change.TransactionID]
	if !ok || txn.HotelID != change.HotelID {
		return nil, nil
	}
	matched := false
	for _, from := range change.From {
		if txn.Status == from {
			matched = true
		}
	}
	if !matched {
		return nil, nil
	}
	actorID := change.ActorID
	switch change.To {
	case domain.TxnApproved:
		txn.ApprovedBy = &actorID
	case domain.TxnRejected:
		txn.RejectedBy = &actorID
		txn.RejectionReason = change.Reason
	case domain.TxnVoided:
		txn.VoidedBy = &actorID
		txn.VoidReason = change.Reason
	}
	txn.Status = change.To
	txn.LastUpdatedBy = actorID
	txn.LastUpdatedAt = change.At
	txn.Version++
	r.txns[txn.TransactionID] = txn
	return &txn, nil
}

// --- Staff users ---

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.StaffUser
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.StaffUser{}}
}

func (r *fakeUserRepo) FindStaffUserByUsername(ctx context.Context, username string) (*domain.StaffUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[strings.ToLower(username)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &user, nil
}

func (r *fakeUserRepo) SaveStaffUser(ctx context.Context, user domain.StaffUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(user.Username)
	if _, ok := r.users[key]; ok {
		return apperrors.ErrDuplicate
	}
	r.users[key] = user
	return nil
}

// --- Events ---

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) names() []domain.EventName {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]domain.EventName, len(p.events))
	for i, e := range p.events {
		names[i] = e.Name
	}
	return names
}

// --- Helpers ---

const testHotel = "hotel-1"

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func actorAs(role domain.Role, userID string) domain.Actor {
	return domain.Actor{UserID: userID, Role: role, HotelID: testHotel}
}
