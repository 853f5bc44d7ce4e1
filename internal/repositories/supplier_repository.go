package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"voucher-service/internal/models"
)

type SupplierRepository interface {
	InsertSupplier(s *models.Supplier) error
	GetSupplierByID(id int64) (*models.Supplier, error)
	GetSupplierByName(name string) (*models.Supplier, error)
	ListSuppliers() ([]*models.Supplier, error)
	UpdateSupplier(s *models.Supplier) error
	DeleteSupplier(id int64) error
}

type supplierRepository struct {
	db *sql.DB
}

func NewSupplierRepository(db *sql.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) InsertSupplier(s *models.Supplier) error {
	query := `
		INSERT INTO suppliers (
			name, vendor_id, amount_unit,
			total_comm, retailer_comm, sales_agent_comm, active
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.Exec(query,
		s.Name,
		s.VendorID,
		s.AmountUnit,
		s.TotalComm,
		s.RetailerComm,
		s.SalesAgentComm,
		s.Active,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

func (r *supplierRepository) GetSupplierByID(id int64) (*models.Supplier, error) {
	s := &models.Supplier{}
	query := `
		SELECT id, name, vendor_id, amount_unit,
		       total_comm, retailer_comm, sales_agent_comm, active,
		       created_at, updated_at
		FROM suppliers
		WHERE id = ?
	`
	err := r.db.QueryRow(query, id).Scan(
		&s.ID,
		&s.Name,
		&s.VendorID,
		&s.AmountUnit,
		&s.TotalComm,
		&s.RetailerComm,
		&s.SalesAgentComm,
		&s.Active,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("supplier %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *supplierRepository) GetSupplierByName(name string) (*models.Supplier, error) {
	s := &models.Supplier{}
	query := `
		SELECT id, name, vendor_id, amount_unit,
		       total_comm, retailer_comm, sales_agent_comm, active,
		       created_at, updated_at
		FROM suppliers
		WHERE name = ?
	`
	err := r.db.QueryRow(query, name).Scan(
		&s.ID,
		&s.Name,
		&s.VendorID,
		&s.AmountUnit,
		&s.TotalComm,
		&s.RetailerComm,
		&s.SalesAgentComm,
		&s.Active,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("supplier %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *supplierRepository) ListSuppliers() ([]*models.Supplier, error) {
	query := `
		SELECT id, name, vendor_id, amount_unit,
		       total_comm, retailer_comm, sales_agent_comm, active,
		       created_at, updated_at
		FROM suppliers
		ORDER BY name
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []*models.Supplier
	for rows.Next() {
		s := &models.Supplier{}
		err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.VendorID,
			&s.AmountUnit,
			&s.TotalComm,
			&s.RetailerComm,
			&s.SalesAgentComm,
			&s.Active,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *supplierRepository) UpdateSupplier(s *models.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = ?,
			vendor_id = ?,
			amount_unit = ?,
			total_comm = ?,
			retailer_comm = ?,
			sales_agent_comm = ?,
			active = ?,
			updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.Exec(query,
		s.Name,
		s.VendorID,
		s.AmountUnit,
		s.TotalComm,
		s.RetailerComm,
		s.SalesAgentComm,
		s.Active,
		time.Now(),
		s.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("supplier %w", ErrNotFound)
	}
	return nil
}

func (r *supplierRepository) DeleteSupplier(id int64) error {
	result, err := r.db.Exec(`DELETE FROM suppliers WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("supplier %w", ErrNotFound)
	}
	return nil
}
