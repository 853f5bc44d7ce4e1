package services

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"voucher-service/internal/commission"
	"voucher-service/internal/logger"
	"voucher-service/internal/models"
	"voucher-service/internal/repositories"
)

// SalesService handles the post-upload lifecycle: selling a voucher through a
// terminal and sweeping expired stock.
type SalesService struct {
	voucherRepo  repositories.VoucherRepository
	terminalRepo repositories.TerminalRepository
	log          zerolog.Logger
}

func NewSalesService(
	voucherRepo repositories.VoucherRepository,
	terminalRepo repositories.TerminalRepository,
) *SalesService {
	return &SalesService{
		voucherRepo:  voucherRepo,
		terminalRepo: terminalRepo,
		log:          logger.WithComponent("sales"),
	}
}

type SaleInput struct {
	SupplierName string  `json:"supplier_name"`
	TerminalCode string  `json:"terminal_code"`
	SaleAmount   float64 `json:"sale_amount"`
}

// SaleResult reports the recorded sale with the commission figures realized
// at sale time. For variable-amount vouchers the breakdown is computed here,
// against the concrete sale amount, since none existed at upload.
type SaleResult struct {
	Sale      *models.VoucherSale `json:"sale"`
	Voucher   *models.Voucher     `json:"voucher"`
	Breakdown *BreakdownView      `json:"breakdown"`
}

func (s *SalesService) SellVoucher(serial string, input SaleInput) (*SaleResult, error) {
	if input.SupplierName == "" {
		return nil, fmt.Errorf("supplier_name is required")
	}
	if input.TerminalCode == "" {
		return nil, fmt.Errorf("terminal_code is required")
	}

	voucher, err := s.voucherRepo.GetVoucherBySerial(input.SupplierName, serial)
	if err != nil {
		return nil, err
	}

	terminal, err := s.terminalRepo.GetTerminalByCode(input.TerminalCode)
	if err != nil {
		return nil, err
	}
	if !terminal.Active {
		return nil, fmt.Errorf("terminal %s is not active", terminal.Code)
	}

	saleAmount := voucher.Amount
	variable := commission.IsVariableAmount(voucher.Name, voucher.Amount)
	if variable {
		if input.SaleAmount <= 0 {
			return nil, fmt.Errorf("sale_amount is required for a variable-amount voucher")
		}
		saleAmount = input.SaleAmount
	}

	sale, err := s.voucherRepo.RecordSale(voucher.ID, terminal.ID, saleAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to record sale: %v", err)
	}
	voucher.Status = models.StatusSold

	breakdown := commission.Calculate(saleAmount, voucher.TotalComm, voucher.RetailerComm, voucher.SalesAgentComm)

	s.log.Info().
		Str("supplier", voucher.SupplierName).
		Str("serial", serial).
		Str("terminal", terminal.Code).
		Float64("amount", saleAmount).
		Msg("voucher sold")

	masked := *voucher
	masked.PIN = MaskPIN(voucher.PIN)

	return &SaleResult{
		Sale:      sale,
		Voucher:   &masked,
		Breakdown: NewBreakdownView(breakdown),
	}, nil
}

// ExpireVouchers marks every active voucher past its expiry date as expired
// and returns how many were swept.
func (s *SalesService) ExpireVouchers() (int64, error) {
	count, err := s.voucherRepo.MarkExpired(time.Now().Format("2006-01-02"))
	if err != nil {
		return 0, fmt.Errorf("failed to expire vouchers: %v", err)
	}
	if count > 0 {
		s.log.Info().Int64("expired", count).Msg("expired vouchers swept")
	}
	return count, nil
}
