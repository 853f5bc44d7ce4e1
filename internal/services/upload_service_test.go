package services

import (
	"errors"
	"strings"
	"testing"

	"voucher-service/internal/models"
	"voucher-service/internal/repositories"
)

type mockSupplierRepo struct {
	supplier *models.Supplier
}

func (m *mockSupplierRepo) InsertSupplier(s *models.Supplier) error { return errors.New("not implemented") }
func (m *mockSupplierRepo) GetSupplierByID(id int64) (*models.Supplier, error) {
	if m.supplier == nil || m.supplier.ID != id {
		return nil, errors.New("supplier not found")
	}
	return m.supplier, nil
}
func (m *mockSupplierRepo) GetSupplierByName(name string) (*models.Supplier, error) {
	if m.supplier == nil || m.supplier.Name != name {
		return nil, errors.New("supplier not found")
	}
	return m.supplier, nil
}
func (m *mockSupplierRepo) ListSuppliers() ([]*models.Supplier, error) {
	return []*models.Supplier{m.supplier}, nil
}
func (m *mockSupplierRepo) UpdateSupplier(s *models.Supplier) error { return nil }
func (m *mockSupplierRepo) DeleteSupplier(id int64) error           { return nil }

type mockVoucherRepo struct {
	existing  map[string]bool
	existsErr error
	saveErr   error
	saved     []*models.Voucher
	saveCalls int
}

func (m *mockVoucherRepo) SaveBatch(vouchers []*models.Voucher) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, vouchers...)
	return nil
}

func (m *mockVoucherRepo) ExistingSerials(supplierName string, serials []string) (map[string]bool, error) {
	if m.existsErr != nil {
		return nil, m.existsErr
	}
	found := make(map[string]bool)
	for _, s := range serials {
		if m.existing[s] {
			found[s] = true
		}
	}
	return found, nil
}

func (m *mockVoucherRepo) ListVouchers(filter repositories.VoucherFilter) ([]*models.Voucher, error) {
	return m.saved, nil
}
func (m *mockVoucherRepo) GetVoucherBySerial(supplierName, serial string) (*models.Voucher, error) {
	for _, v := range m.saved {
		if v.SupplierName == supplierName && v.SerialNumber == serial {
			return v, nil
		}
	}
	return nil, errors.New("voucher not found")
}
func (m *mockVoucherRepo) RecordSale(voucherID, terminalID int64, saleAmount float64) (*models.VoucherSale, error) {
	return &models.VoucherSale{VoucherID: voucherID, TerminalID: terminalID, SaleAmount: saleAmount}, nil
}
func (m *mockVoucherRepo) MarkExpired(asOf string) (int64, error) { return 0, nil }
func (m *mockVoucherRepo) InventorySummary() ([]*repositories.InventorySummaryRow, error) {
	return nil, nil
}

func ringaSupplier() *models.Supplier {
	return &models.Supplier{
		ID:             1,
		Name:           "Ringa",
		VendorID:       "ringa",
		AmountUnit:     models.UnitMinor,
		TotalComm:      0.10,
		RetailerComm:   0.40,
		SalesAgentComm: 0.20,
		Active:         true,
	}
}

const ringaFile = "D|RINGA0100|5000|1|0|31/12/2027|SER1|PIN1\n" +
	"D|RINGA0100|5000|1|0|31/12/2027|SER2|PIN2\n"

func TestUploadFileInsertsNewVouchers(t *testing.T) {
	voucherRepo := &mockVoucherRepo{existing: map[string]bool{}}
	svc := NewUploadService(&mockSupplierRepo{supplier: ringaSupplier()}, voucherRepo)

	result, err := svc.UploadFile(1, []byte(ringaFile))
	if err != nil {
		t.Fatalf("UploadFile returned error: %v", err)
	}

	if result.Inserted != 2 {
		t.Errorf("inserted = %d, want 2", result.Inserted)
	}
	if result.Duplicates != 0 {
		t.Errorf("duplicates = %d, want 0", result.Duplicates)
	}
	if len(voucherRepo.saved) != 2 {
		t.Fatalf("saved %d vouchers, want 2", len(voucherRepo.saved))
	}

	v := voucherRepo.saved[0]
	if v.Status != models.StatusActive {
		t.Errorf("status = %q, want active", v.Status)
	}
	if v.Source != models.SourceManualUpload {
		t.Errorf("source = %q, want manual_upload", v.Source)
	}
	// Minor-unit supplier: 5000 cents -> 50.00, profit = 50*0.10*(1-0.4-0.2).
	if v.Amount != 50 {
		t.Errorf("amount = %v, want 50", v.Amount)
	}
	if diff := v.Profit - 2; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("profit = %v, want 2", v.Profit)
	}
	if v.ExpiryDate != "2027-12-31" {
		t.Errorf("expiry = %q, want 2027-12-31", v.ExpiryDate)
	}
}

func TestUploadFileIdempotentReupload(t *testing.T) {
	voucherRepo := &mockVoucherRepo{existing: map[string]bool{"SER1": true, "SER2": true}}
	svc := NewUploadService(&mockSupplierRepo{supplier: ringaSupplier()}, voucherRepo)

	result, err := svc.UploadFile(1, []byte(ringaFile))
	if err != nil {
		t.Fatalf("UploadFile returned error: %v", err)
	}

	if result.Inserted != 0 {
		t.Errorf("inserted = %d, want 0", result.Inserted)
	}
	if result.Duplicates != 2 {
		t.Errorf("duplicates = %d, want 2", result.Duplicates)
	}
	if voucherRepo.saveCalls != 0 {
		t.Errorf("SaveBatch called %d times, want 0", voucherRepo.saveCalls)
	}
	if !strings.Contains(result.Message, "all records already exist") {
		t.Errorf("unexpected message: %q", result.Message)
	}
	for _, e := range result.Entries {
		if !e.Exists {
			t.Errorf("entry %s not flagged as existing", e.SerialNumber)
		}
	}
}

func TestUploadFilePartialDuplicates(t *testing.T) {
	voucherRepo := &mockVoucherRepo{existing: map[string]bool{"SER1": true}}
	svc := NewUploadService(&mockSupplierRepo{supplier: ringaSupplier()}, voucherRepo)

	result, err := svc.UploadFile(1, []byte(ringaFile))
	if err != nil {
		t.Fatalf("UploadFile returned error: %v", err)
	}

	if result.Inserted != 1 || result.Duplicates != 1 {
		t.Errorf("inserted/duplicates = %d/%d, want 1/1", result.Inserted, result.Duplicates)
	}
	if len(voucherRepo.saved) != 1 || voucherRepo.saved[0].SerialNumber != "SER2" {
		t.Errorf("expected only SER2 to be saved")
	}
}

func TestUploadFileDedupesWithinBatch(t *testing.T) {
	voucherRepo := &mockVoucherRepo{existing: map[string]bool{}}
	svc := NewUploadService(&mockSupplierRepo{supplier: ringaSupplier()}, voucherRepo)

	file := "D|RINGA0100|5000|1|0|31/12/2027|SER1|PIN1\n" +
		"D|RINGA0100|5000|1|0|31/12/2027|SER1|PIN1\n" +
		"D|RINGA0100|5000|1|0|31/12/2027|SER2|PIN2\n"
	result, err := svc.UploadFile(1, []byte(file))
	if err != nil {
		t.Fatalf("UploadFile returned error: %v", err)
	}

	if result.Inserted != 2 || result.Duplicates != 1 {
		t.Errorf("inserted/duplicates = %d/%d, want 2/1", result.Inserted, result.Duplicates)
	}
	counts := map[string]int{}
	for _, v := range voucherRepo.saved {
		counts[v.SerialNumber]++
	}
	if counts["SER1"] != 1 || counts["SER2"] != 1 {
		t.Errorf("batch carries serial counts %v, want each serial once", counts)
	}
	if !result.Entries[1].Exists {
		t.Error("second occurrence of SER1 not flagged as existing")
	}
}

func TestUploadFileAbortsWhenDuplicateCheckFails(t *testing.T) {
	voucherRepo := &mockVoucherRepo{existsErr: errors.New("store unreachable")}
	svc := NewUploadService(&mockSupplierRepo{supplier: ringaSupplier()}, voucherRepo)

	_, err := svc.UploadFile(1, []byte(ringaFile))
	if err == nil {
		t.Fatal("expected error when duplicate check fails")
	}
	if !strings.Contains(err.Error(), "store unreachable") {
		t.Errorf("underlying failure not surfaced: %v", err)
	}
	if voucherRepo.saveCalls != 0 {
		t.Error("no insert may proceed without a successful duplicate check")
	}
}

func TestUploadFileReportsBatchInsertFailure(t *testing.T) {
	voucherRepo := &mockVoucherRepo{existing: map[string]bool{}, saveErr: errors.New("insert rejected")}
	svc := NewUploadService(&mockSupplierRepo{supplier: ringaSupplier()}, voucherRepo)

	_, err := svc.UploadFile(1, []byte(ringaFile))
	if err == nil {
		t.Fatal("expected error when batch insert fails")
	}
	if !strings.Contains(err.Error(), "insert rejected") {
		t.Errorf("underlying failure not surfaced: %v", err)
	}
}

func TestUploadFileRejectsWrongSupplierFile(t *testing.T) {
	voucherRepo := &mockVoucherRepo{existing: map[string]bool{}}
	svc := NewUploadService(&mockSupplierRepo{supplier: ringaSupplier()}, voucherRepo)

	hwbFile := "D|HWB500|500.00|1|0|25/12/2027|HWBSER1|HWBPIN1\n"
	_, err := svc.UploadFile(1, []byte(hwbFile))
	if err == nil {
		t.Fatal("expected rejection for a Hollywoodbets file fed to Ringa")
	}
	if voucherRepo.saveCalls != 0 {
		t.Error("rejected file must produce no records")
	}
}

func TestUploadFileCountsSkippedLines(t *testing.T) {
	voucherRepo := &mockVoucherRepo{existing: map[string]bool{}}
	svc := NewUploadService(&mockSupplierRepo{supplier: ringaSupplier()}, voucherRepo)

	file := ringaFile + "D|RINGA0100|abc|1|0|31/12/2027|SER3|PIN3\n"
	result, err := svc.UploadFile(1, []byte(file))
	if err != nil {
		t.Fatalf("UploadFile returned error: %v", err)
	}

	if result.Inserted != 2 {
		t.Errorf("inserted = %d, want 2", result.Inserted)
	}
	if result.SkippedLines != 1 {
		t.Errorf("skipped_lines = %d, want 1", result.SkippedLines)
	}
}

func TestUploadFileBaseUnitSupplier(t *testing.T) {
	supplier := ringaSupplier()
	supplier.Name = "Easyload"
	supplier.AmountUnit = models.UnitBase

	voucherRepo := &mockVoucherRepo{existing: map[string]bool{}}
	svc := NewUploadService(&mockSupplierRepo{supplier: supplier}, voucherRepo)

	file := "Easyload R50,50,ELSER1,ELPIN1,20270822\n"
	result, err := svc.UploadFile(1, []byte(file))
	if err != nil {
		t.Fatalf("UploadFile returned error: %v", err)
	}
	if result.Inserted != 1 {
		t.Fatalf("inserted = %d, want 1", result.Inserted)
	}
	if voucherRepo.saved[0].Amount != 50 {
		t.Errorf("base-unit amount = %v, want 50 exactly", voucherRepo.saved[0].Amount)
	}
}
