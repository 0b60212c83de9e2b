package domain

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// TaxType identifies a hotel tax. Known types have a fixed application order;
// any other lower-case identifier is accepted and applied after them.
type TaxType string

const (
	TaxVAT        TaxType = "vat"
	TaxService    TaxType = "service_tax"
	TaxLuxury     TaxType = "luxury_tax"
	unknownTaxPos         = 999
)

var taxPrecedence = map[TaxType]int{
	TaxVAT:     1,
	TaxService: 2,
	TaxLuxury:  3,
}

// Precedence returns the position of the tax in the cascade.
func (t TaxType) Precedence() int {
	if p, ok := taxPrecedence[t]; ok {
		return p
	}
	return unknownTaxPos
}

// TaxSetting is one configured tax for a hotel.
type TaxSetting struct {
	ID       int64           `json:"id"`
	HotelID  string          `json:"hotelID"`
	TaxType  TaxType         `json:"taxType"`
	Label    string          `json:"label"`
	Percent  decimal.Decimal `json:"percent"`
	IsActive bool            `json:"isActive"`
	AuditFields
}

// SortTaxes returns the active settings in cascade order. Ties between types
// sharing a precedence are broken by insertion id, then by tax type.
func SortTaxes(settings []TaxSetting) []TaxSetting {
	active := make([]TaxSetting, 0, len(settings))
	for _, s := range settings {
		if s.IsActive {
			active = append(active, s)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		pi, pj := active[i].TaxType.Precedence(), active[j].TaxType.Precedence()
		if pi != pj {
			return pi < pj
		}
		if active[i].ID != active[j].ID {
			return active[i].ID < active[j].ID
		}
		return active[i].TaxType < active[j].TaxType
	})
	return active
}

// ActiveLabelOwner returns the type of another active tax already using label,
// compared case-insensitively. Bills key their breakdown by label, so two
// active taxes may not share one.
func ActiveLabelOwner(settings []TaxSetting, taxType TaxType, label string) (TaxType, bool) {
	label = strings.TrimSpace(label)
	for _, s := range settings {
		if s.IsActive && s.TaxType != taxType && strings.EqualFold(strings.TrimSpace(s.Label), label) {
			return s.TaxType, true
		}
	}
	return "", false
}
