package commission

import (
	"math"
	"testing"

	"voucher-service/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateDecomposition(t *testing.T) {
	// Retailer and agent shares are carved out of the total commission
	// amount, not of the face value.
	b := Calculate(100, 0.10, 0.40, 0.20)

	if !almostEqual(b.TotalAmount, 10) {
		t.Errorf("total commission = %v, want 10", b.TotalAmount)
	}
	if !almostEqual(b.RetailerAmount, 4) {
		t.Errorf("retailer commission = %v, want 4", b.RetailerAmount)
	}
	if !almostEqual(b.SalesAgentAmount, 2) {
		t.Errorf("sales agent commission = %v, want 2", b.SalesAgentAmount)
	}
	if !almostEqual(b.Profit, 4) {
		t.Errorf("profit = %v, want 4", b.Profit)
	}
	if !b.HasAmounts {
		t.Error("fixed-value breakdown should have amounts")
	}
}

func TestCalculateZeroRates(t *testing.T) {
	b := Calculate(250, 0, 0, 0)
	if b.TotalAmount != 0 || b.Profit != 0 {
		t.Errorf("expected zero commission and profit, got %+v", b)
	}
}

func TestVariableBreakdown(t *testing.T) {
	b := Variable()
	if b.HasAmounts {
		t.Error("variable-amount breakdown must not report amounts")
	}
	if b.Profit != 0 {
		t.Errorf("variable-amount profit = %v, want 0", b.Profit)
	}
}

func TestFaceValueUnitConvention(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		unit string
		want float64
	}{
		{name: "base unit kept as-is", raw: 50, unit: models.UnitBase, want: 50},
		{name: "minor unit divided by 100", raw: 5000, unit: models.UnitMinor, want: 50},
		{name: "unknown unit treated as minor", raw: 5000, unit: "", want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FaceValue(tt.raw, tt.unit); !almostEqual(got, tt.want) {
				t.Errorf("FaceValue(%v, %q) = %v, want %v", tt.raw, tt.unit, got, tt.want)
			}
		})
	}
}

func TestIsVariableAmount(t *testing.T) {
	tests := []struct {
		name    string
		product string
		amount  float64
		want    bool
	}{
		{name: "zero amount", product: "OTT Voucher", amount: 0, want: true},
		{name: "variable in name", product: "OTT Variable Amount", amount: 100, want: true},
		{name: "fixed value", product: "RINGA0100", amount: 100, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsVariableAmount(tt.product, tt.amount); got != tt.want {
				t.Errorf("IsVariableAmount(%q, %v) = %v, want %v", tt.product, tt.amount, got, tt.want)
			}
		})
	}
}
