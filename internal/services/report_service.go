package services

import (
	"fmt"
	"strings"

	"voucher-service/internal/commission"
	"voucher-service/internal/models"
	"voucher-service/internal/repositories"
)

// BreakdownView is the display form of a commission breakdown. Amount fields
// are pointers so a variable-amount voucher serializes them as null, which
// the UI renders as a dash; the percentage rates are always present.
type BreakdownView struct {
	VoucherAmount    *float64 `json:"voucher_amount"`
	TotalAmount      *float64 `json:"total_commission_amount"`
	RetailerAmount   *float64 `json:"retailer_commission_amount"`
	SalesAgentAmount *float64 `json:"sales_agent_commission_amount"`
	Profit           float64  `json:"profit"`
}

func NewBreakdownView(b commission.Breakdown) *BreakdownView {
	view := &BreakdownView{Profit: b.Profit}
	if b.HasAmounts {
		view.VoucherAmount = &b.VoucherAmount
		view.TotalAmount = &b.TotalAmount
		view.RetailerAmount = &b.RetailerAmount
		view.SalesAgentAmount = &b.SalesAgentAmount
	}
	return view
}

// MaskPIN hides all but the last four characters of a voucher PIN for display.
func MaskPIN(pin string) string {
	if len(pin) <= 4 {
		return strings.Repeat("*", len(pin))
	}
	return strings.Repeat("*", len(pin)-4) + pin[len(pin)-4:]
}

// ReportService serves the read side: voucher listings, inventory aggregates,
// and CSV exports. PINs are masked on every surface it produces.
type ReportService struct {
	voucherRepo repositories.VoucherRepository
}

func NewReportService(voucherRepo repositories.VoucherRepository) *ReportService {
	return &ReportService{voucherRepo: voucherRepo}
}

func (s *ReportService) ListVouchers(filter repositories.VoucherFilter) ([]*models.Voucher, error) {
	vouchers, err := s.voucherRepo.ListVouchers(filter)
	if err != nil {
		return nil, err
	}
	for _, v := range vouchers {
		v.PIN = MaskPIN(v.PIN)
	}
	return vouchers, nil
}

func (s *ReportService) InventorySummary() ([]*repositories.InventorySummaryRow, error) {
	return s.voucherRepo.InventorySummary()
}

var exportHeader = []string{
	"supplier_name", "name", "category", "amount", "voucher_serial_number",
	"voucher_pin", "status", "source", "expiry_date",
	"total_comm", "retailer_comm", "sales_agent_comm", "profit",
}

// ExportVouchers returns the filtered voucher inventory as CSV rows, header
// first, ready for a report download.
func (s *ReportService) ExportVouchers(filter repositories.VoucherFilter) ([][]string, error) {
	vouchers, err := s.voucherRepo.ListVouchers(filter)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(vouchers)+1)
	rows = append(rows, exportHeader)
	for _, v := range vouchers {
		rows = append(rows, []string{
			v.SupplierName,
			v.Name,
			v.Category,
			fmt.Sprintf("%.2f", v.Amount),
			v.SerialNumber,
			MaskPIN(v.PIN),
			v.Status,
			v.Source,
			v.ExpiryDate,
			fmt.Sprintf("%.4f", v.TotalComm),
			fmt.Sprintf("%.4f", v.RetailerComm),
			fmt.Sprintf("%.4f", v.SalesAgentComm),
			fmt.Sprintf("%.2f", v.Profit),
		})
	}
	return rows, nil
}
