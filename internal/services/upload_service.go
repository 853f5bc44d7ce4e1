package services

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"voucher-service/internal/commission"
	"voucher-service/internal/logger"
	"voucher-service/internal/models"
	"voucher-service/internal/repositories"
	"voucher-service/internal/voucherfile"
)

// UploadService runs the voucher batch ingestion pipeline: classify the file's
// lines for the supplier's format, extract entries, normalize dates, filter
// duplicates against the store, enrich with commission figures, and submit the
// remainder as one batch insert.
type UploadService struct {
	supplierRepo repositories.SupplierRepository
	voucherRepo  repositories.VoucherRepository
	log          zerolog.Logger
}

func NewUploadService(
	supplierRepo repositories.SupplierRepository,
	voucherRepo repositories.VoucherRepository,
) *UploadService {
	return &UploadService{
		supplierRepo: supplierRepo,
		voucherRepo:  voucherRepo,
		log:          logger.WithComponent("upload"),
	}
}

// UploadResult is what the operator sees after an upload. Entries includes
// duplicates (flagged exists) so the UI can show why fewer records were saved
// than were in the file; SkippedLines counts noise rows dropped during
// extraction.
type UploadResult struct {
	BatchID      string              `json:"batch_id"`
	SupplierName string              `json:"supplier_name"`
	Entries      []voucherfile.Entry `json:"entries"`
	Inserted     int                 `json:"inserted"`
	Duplicates   int                 `json:"duplicates"`
	SkippedLines int                 `json:"skipped_lines"`
	Message      string              `json:"message,omitempty"`
}

// UploadFile ingests one supplier file. Format rejection and duplicate-check
// or insert failures return an error and persist nothing; an all-duplicate
// file is an informational result, not an error.
func (s *UploadService) UploadFile(supplierID int64, data []byte) (*UploadResult, error) {
	supplier, err := s.supplierRepo.GetSupplierByID(supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to load supplier: %w", err)
	}

	format, err := voucherfile.FormatForSupplier(supplier.Name)
	if err != nil {
		return nil, err
	}

	parsed, err := voucherfile.Parse(string(data), format)
	if err != nil {
		return nil, err
	}

	serials := make([]string, 0, len(parsed.Entries))
	for _, e := range parsed.Entries {
		serials = append(serials, e.SerialNumber)
	}

	// No insert proceeds without a successful duplicate check, otherwise a
	// retry could re-insert vouchers that were already sold.
	existing, err := s.voucherRepo.ExistingSerials(supplier.Name, serials)
	if err != nil {
		return nil, fmt.Errorf("duplicate check failed: %v", err)
	}

	result := &UploadResult{
		BatchID:      fmt.Sprintf("UP-%s", time.Now().Format("20060102-150405")),
		SupplierName: supplier.Name,
		SkippedLines: parsed.SkippedLines,
	}

	// A serial repeated within the file counts as a duplicate too; the store's
	// uniqueness constraint would reject the whole batch otherwise.
	seen := make(map[string]bool, len(parsed.Entries))
	var toInsert []*models.Voucher
	for _, e := range parsed.Entries {
		e.Exists = existing[e.SerialNumber] || seen[e.SerialNumber]
		result.Entries = append(result.Entries, e)
		if e.Exists {
			result.Duplicates++
			continue
		}
		seen[e.SerialNumber] = true
		toInsert = append(toInsert, s.buildVoucher(supplier, e))
	}

	if len(toInsert) == 0 {
		result.Message = "nothing to upload, all records already exist"
		s.log.Info().
			Str("supplier", supplier.Name).
			Int("duplicates", result.Duplicates).
			Msg("upload contained no new vouchers")
		return result, nil
	}

	if err := s.voucherRepo.SaveBatch(toInsert); err != nil {
		return nil, fmt.Errorf("failed to save voucher batch: %v", err)
	}

	result.Inserted = len(toInsert)
	s.log.Info().
		Str("supplier", supplier.Name).
		Str("batch_id", result.BatchID).
		Int("inserted", result.Inserted).
		Int("duplicates", result.Duplicates).
		Int("skipped_lines", result.SkippedLines).
		Msg("voucher batch uploaded")

	return result, nil
}

func (s *UploadService) buildVoucher(supplier *models.Supplier, e voucherfile.Entry) *models.Voucher {
	face := commission.FaceValue(e.Amount, supplier.AmountUnit)

	var breakdown commission.Breakdown
	if commission.IsVariableAmount(e.Type, face) {
		breakdown = commission.Variable()
	} else {
		breakdown = commission.Calculate(face, supplier.TotalComm, supplier.RetailerComm, supplier.SalesAgentComm)
	}

	return &models.Voucher{
		Name:           e.Type,
		Category:       supplier.Name,
		Amount:         face,
		PIN:            e.PIN,
		SerialNumber:   e.SerialNumber,
		Source:         models.SourceManualUpload,
		Status:         models.StatusActive,
		ExpiryDate:     e.ExpiryDate,
		SupplierID:     supplier.ID,
		SupplierName:   supplier.Name,
		VendorID:       supplier.VendorID,
		TotalComm:      supplier.TotalComm,
		RetailerComm:   supplier.RetailerComm,
		SalesAgentComm: supplier.SalesAgentComm,
		Profit:         breakdown.Profit,
	}
}
