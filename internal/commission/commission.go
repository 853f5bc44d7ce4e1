// Package commission derives the per-voucher commission split and net profit
// from a face value and the supplier's contract rates.
package commission

import (
	"strings"

	"voucher-service/internal/models"
)

// Breakdown is the derived commission decomposition for one voucher. The
// retailer and sales-agent shares are fractions of the supplier's total
// commission amount, not of the face value: both are carved out of the
// supplier's commission rather than added on top of it.
//
// HasAmounts is false for variable-amount vouchers, where the rates are known
// up front but there is no fixed base to multiply against until the point of
// sale; display surfaces render the amount fields as a dash.
type Breakdown struct {
	VoucherAmount    float64
	TotalAmount      float64
	RetailerAmount   float64
	SalesAgentAmount float64
	Profit           float64
	HasAmounts       bool
}

// Calculate returns the breakdown for a fixed-value voucher.
func Calculate(amount, totalComm, retailerComm, salesAgentComm float64) Breakdown {
	total := amount * totalComm
	retailer := total * retailerComm
	agent := total * salesAgentComm

	return Breakdown{
		VoucherAmount:    amount,
		TotalAmount:      total,
		RetailerAmount:   retailer,
		SalesAgentAmount: agent,
		Profit:           total - retailer - agent,
		HasAmounts:       true,
	}
}

// Variable returns the breakdown for a variable-amount voucher: profit zero,
// no computed amounts.
func Variable() Breakdown {
	return Breakdown{}
}

// FaceValue applies the supplier's amount-unit convention. Suppliers declaring
// amounts in the minor unit have the raw value divided by 100; base-unit
// suppliers use it unchanged. Applying the wrong convention silently scales
// every commission and profit figure by 100, so the unit travels with the
// supplier record instead of an inline name list.
func FaceValue(raw float64, amountUnit string) float64 {
	if amountUnit == models.UnitBase {
		return raw
	}
	return raw / 100
}

// IsVariableAmount reports whether a voucher has no fixed face value at
// upload time, either because the amount is zero or because the product is
// named as an open-value voucher.
func IsVariableAmount(name string, amount float64) bool {
	if amount == 0 {
		return true
	}
	return strings.Contains(strings.ToLower(name), "variable")
}
