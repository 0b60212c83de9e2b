package domain

import "github.com/shopspring/decimal"

// Role is a staff member's role within a hotel.
type Role string

const (
	RoleOwner        Role = "owner"
	RoleManager      Role = "manager"
	RoleKitchen      Role = "kitchen"
	RoleBar          Role = "bar"
	RoleWaiter       Role = "waiter"
	RoleCashier      Role = "cashier"
	RoleFinance      Role = "finance"
	RoleHousekeeping Role = "housekeeping"
	RoleSecurity     Role = "security"
)

// AllRoles lists every known role in display order.
var AllRoles = []Role{
	RoleOwner, RoleManager, RoleKitchen, RoleBar, RoleWaiter,
	RoleCashier, RoleFinance, RoleHousekeeping, RoleSecurity,
}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// Capability is a single permission the core checks before acting.
type Capability string

const (
	CapAdvanceKOT          Capability = "advance_kot"          // approve / mark ready
	CapRejectKOT           Capability = "reject_kot"           // decline / cancel
	CapServeKOT            Capability = "serve_kot"            // complete
	CapPlaceOrder          Capability = "place_order"          // open orders, add items
	CapFinalizeBill        Capability = "finalize_bill"        // take payment for a table
	CapRecordTransactions  Capability = "record_transactions"  // post money movements
	CapApproveTransactions Capability = "approve_transactions" // approve / reject pending
	CapManageVouchers      Capability = "manage_vouchers"
	CapConfigureHotel      Capability = "configure_hotel" // tax settings, role limits
	CapViewLedger          Capability = "view_ledger"
)

// RoleCapabilities is the static role → capability table. Flags that owners
// can toggle per hotel (void, wastage approval) live on RoleLimit instead.
var RoleCapabilities = map[Role][]Capability{
	RoleOwner: {
		CapAdvanceKOT, CapRejectKOT, CapServeKOT, CapPlaceOrder, CapFinalizeBill,
		CapRecordTransactions, CapApproveTransactions, CapManageVouchers,
		CapConfigureHotel, CapViewLedger,
	},
	RoleManager: {
		CapAdvanceKOT, CapRejectKOT, CapServeKOT, CapPlaceOrder, CapFinalizeBill,
		CapRecordTransactions, CapApproveTransactions, CapManageVouchers, CapViewLedger,
	},
	RoleKitchen:      {CapAdvanceKOT, CapServeKOT},
	RoleBar:          {CapAdvanceKOT, CapServeKOT, CapPlaceOrder},
	RoleWaiter:       {CapServeKOT, CapPlaceOrder, CapFinalizeBill, CapRecordTransactions},
	RoleCashier:      {CapServeKOT, CapFinalizeBill, CapRecordTransactions, CapViewLedger},
	RoleFinance:      {CapRecordTransactions, CapViewLedger},
	RoleHousekeeping: {CapRecordTransactions},
	RoleSecurity:     {},
}

// Can reports whether the role holds the capability.
func (r Role) Can(c Capability) bool {
	for _, held := range RoleCapabilities[r] {
		if held == c {
			return true
		}
	}
	return false
}

// Actor identifies who is performing an operation. HotelID is the tenant the
// actor's credentials were issued for.
type Actor struct {
	UserID  string `json:"userID"`
	Role    Role   `json:"role"`
	HotelID string `json:"hotelID"`
}

// Can reports whether the actor's role holds the capability.
func (a Actor) Can(c Capability) bool {
	return a.Role.Can(c)
}

// RoleLimit holds a role's financial ceilings and owner-controlled flags.
// A nil ceiling means unlimited.
type RoleLimit struct {
	HotelID               string           `json:"hotelID"`
	Role                  Role             `json:"role"`
	MaxTransactionAmount  *decimal.Decimal `json:"maxTransactionAmount"`
	MaxDailyAmount        *decimal.Decimal `json:"maxDailyAmount"`
	RequiresApprovalAbove *decimal.Decimal `json:"requiresApprovalAbove"`
	CanVoidTransactions   bool             `json:"canVoidTransactions"`
	CanApproveWastage     bool             `json:"canApproveWastage"`
	AuditFields
}

// NoLimits is used when a role has no configured row: no ceilings, no flags.
func NoLimits(hotelID string, role Role) RoleLimit {
	return RoleLimit{HotelID: hotelID, Role: role}
}

// ExceedsTransactionLimit reports whether amount is above the per-transaction ceiling.
func (l RoleLimit) ExceedsTransactionLimit(amount decimal.Decimal) bool {
	return l.MaxTransactionAmount != nil && amount.GreaterThan(*l.MaxTransactionAmount)
}

// ExceedsDailyLimit reports whether adding amount to today's total breaks the daily ceiling.
func (l RoleLimit) ExceedsDailyLimit(today, amount decimal.Decimal) bool {
	return l.MaxDailyAmount != nil && today.Add(amount).GreaterThan(*l.MaxDailyAmount)
}

// NeedsApproval reports whether amount must wait for a manager/owner.
func (l RoleLimit) NeedsApproval(amount decimal.Decimal) bool {
	return l.RequiresApprovalAbove != nil && amount.GreaterThan(*l.RequiresApprovalAbove)
}
