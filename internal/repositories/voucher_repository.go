package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"voucher-service/internal/models"
)

// existsBatchSize bounds the number of serial numbers per existence query, to
// respect query-size limits of the backing store.
const existsBatchSize = 100

// VoucherFilter narrows voucher listings and exports.
type VoucherFilter struct {
	SupplierID int64
	Status     string
}

// InventorySummaryRow is one supplier/status aggregate for reporting.
type InventorySummaryRow struct {
	SupplierName string  `json:"supplier_name"`
	Status       string  `json:"status"`
	Count        int64   `json:"count"`
	TotalAmount  float64 `json:"total_amount"`
	TotalProfit  float64 `json:"total_profit"`
}

type VoucherRepository interface {
	SaveBatch(vouchers []*models.Voucher) error
	ExistingSerials(supplierName string, serials []string) (map[string]bool, error)
	ListVouchers(filter VoucherFilter) ([]*models.Voucher, error)
	GetVoucherBySerial(supplierName, serial string) (*models.Voucher, error)
	RecordSale(voucherID, terminalID int64, saleAmount float64) (*models.VoucherSale, error)
	MarkExpired(asOf string) (int64, error)
	InventorySummary() ([]*InventorySummaryRow, error)
}

type voucherRepository struct {
	db *sql.DB
}

func NewVoucherRepository(db *sql.DB) VoucherRepository {
	return &voucherRepository{db: db}
}

// SaveBatch inserts the whole batch inside a single transaction. Any row
// failure rolls back the entire batch; there is no partial success.
func (r *voucherRepository) SaveBatch(vouchers []*models.Voucher) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO vouchers (
			name, category, amount, voucher_pin, voucher_serial_number,
			source, status, expiry_date, supplier_id, supplier_name, vendor_id,
			total_comm, retailer_comm, sales_agent_comm, profit
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, v := range vouchers {
		result, err := stmt.Exec(
			v.Name,
			v.Category,
			v.Amount,
			v.PIN,
			v.SerialNumber,
			v.Source,
			v.Status,
			nullableDate(v.ExpiryDate),
			v.SupplierID,
			v.SupplierName,
			v.VendorID,
			v.TotalComm,
			v.RetailerComm,
			v.SalesAgentComm,
			v.Profit,
		)
		if err != nil {
			return err
		}

		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		v.ID = id
	}

	return tx.Commit()
}

// ExistingSerials returns which of the given serial numbers are already
// persisted for the supplier. The input is chunked so no single query carries
// more than existsBatchSize keys; an empty input returns an empty set.
func (r *voucherRepository) ExistingSerials(supplierName string, serials []string) (map[string]bool, error) {
	existing := make(map[string]bool)

	for _, chunk := range chunkSerials(serials, existsBatchSize) {
		placeholders := strings.Repeat("?,", len(chunk))
		placeholders = placeholders[:len(placeholders)-1]

		query := `
			SELECT voucher_serial_number
			FROM vouchers
			WHERE supplier_name = ?
			AND voucher_serial_number IN (` + placeholders + `)
		`
		args := make([]interface{}, 0, len(chunk)+1)
		args = append(args, supplierName)
		for _, s := range chunk {
			args = append(args, s)
		}

		rows, err := r.db.Query(query, args...)
		if err != nil {
			return nil, err
		}

		for rows.Next() {
			var serial string
			if err := rows.Scan(&serial); err != nil {
				rows.Close()
				return nil, err
			}
			existing[serial] = true
		}
		if err = rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	return existing, nil
}

func chunkSerials(serials []string, size int) [][]string {
	var chunks [][]string
	for start := 0; start < len(serials); start += size {
		end := start + size
		if end > len(serials) {
			end = len(serials)
		}
		chunks = append(chunks, serials[start:end])
	}
	return chunks
}

func (r *voucherRepository) ListVouchers(filter VoucherFilter) ([]*models.Voucher, error) {
	query := `
		SELECT id, name, category, amount, voucher_pin, voucher_serial_number,
		       source, status, COALESCE(expiry_date, ''), supplier_id, supplier_name, vendor_id,
		       total_comm, retailer_comm, sales_agent_comm, profit, created_at
		FROM vouchers
		WHERE 1=1
	`
	args := []interface{}{}
	if filter.SupplierID != 0 {
		query += ` AND supplier_id = ?`
		args = append(args, filter.SupplierID)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vouchers []*models.Voucher
	for rows.Next() {
		v := &models.Voucher{}
		err := rows.Scan(
			&v.ID,
			&v.Name,
			&v.Category,
			&v.Amount,
			&v.PIN,
			&v.SerialNumber,
			&v.Source,
			&v.Status,
			&v.ExpiryDate,
			&v.SupplierID,
			&v.SupplierName,
			&v.VendorID,
			&v.TotalComm,
			&v.RetailerComm,
			&v.SalesAgentComm,
			&v.Profit,
			&v.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		vouchers = append(vouchers, v)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return vouchers, nil
}

func (r *voucherRepository) GetVoucherBySerial(supplierName, serial string) (*models.Voucher, error) {
	v := &models.Voucher{}
	query := `
		SELECT id, name, category, amount, voucher_pin, voucher_serial_number,
		       source, status, COALESCE(expiry_date, ''), supplier_id, supplier_name, vendor_id,
		       total_comm, retailer_comm, sales_agent_comm, profit, created_at
		FROM vouchers
		WHERE supplier_name = ? AND voucher_serial_number = ?
	`
	err := r.db.QueryRow(query, supplierName, serial).Scan(
		&v.ID,
		&v.Name,
		&v.Category,
		&v.Amount,
		&v.PIN,
		&v.SerialNumber,
		&v.Source,
		&v.Status,
		&v.ExpiryDate,
		&v.SupplierID,
		&v.SupplierName,
		&v.VendorID,
		&v.TotalComm,
		&v.RetailerComm,
		&v.SalesAgentComm,
		&v.Profit,
		&v.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("voucher %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// RecordSale flips an active voucher to sold and writes the sale row in one
// transaction. A voucher that is not active fails the transition.
func (r *voucherRepository) RecordSale(voucherID, terminalID int64, saleAmount float64) (*models.VoucherSale, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE vouchers SET status = ? WHERE id = ? AND status = ?`,
		models.StatusSold, voucherID, models.StatusActive,
	)
	if err != nil {
		return nil, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, errors.New("voucher is not active")
	}

	sale := &models.VoucherSale{
		VoucherID:  voucherID,
		TerminalID: terminalID,
		SaleAmount: saleAmount,
		SoldAt:     time.Now(),
	}
	saleResult, err := tx.Exec(
		`INSERT INTO voucher_sales (voucher_id, terminal_id, sale_amount, sold_at) VALUES (?, ?, ?, ?)`,
		sale.VoucherID, sale.TerminalID, sale.SaleAmount, sale.SoldAt,
	)
	if err != nil {
		return nil, err
	}
	id, err := saleResult.LastInsertId()
	if err != nil {
		return nil, err
	}
	sale.ID = id

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return sale, nil
}

func (r *voucherRepository) MarkExpired(asOf string) (int64, error) {
	result, err := r.db.Exec(
		`UPDATE vouchers SET status = ? WHERE status = ? AND expiry_date IS NOT NULL AND expiry_date < ?`,
		models.StatusExpired, models.StatusActive, asOf,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *voucherRepository) InventorySummary() ([]*InventorySummaryRow, error) {
	query := `
		SELECT supplier_name, status, COUNT(*), SUM(amount), SUM(profit)
		FROM vouchers
		GROUP BY supplier_name, status
		ORDER BY supplier_name, status
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summary []*InventorySummaryRow
	for rows.Next() {
		row := &InventorySummaryRow{}
		err := rows.Scan(
			&row.SupplierName,
			&row.Status,
			&row.Count,
			&row.TotalAmount,
			&row.TotalProfit,
		)
		if err != nil {
			return nil, err
		}
		summary = append(summary, row)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return summary, nil
}

func nullableDate(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
