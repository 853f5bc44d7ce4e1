package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"voucher-service/internal/models"
)

type RetailerRepository interface {
	InsertRetailer(rt *models.Retailer) error
	GetRetailerByID(id int64) (*models.Retailer, error)
	ListRetailers() ([]*models.Retailer, error)
	UpdateRetailer(rt *models.Retailer) error
	DeleteRetailer(id int64) error
}

type retailerRepository struct {
	db *sql.DB
}

func NewRetailerRepository(db *sql.DB) RetailerRepository {
	return &retailerRepository{db: db}
}

func (r *retailerRepository) InsertRetailer(rt *models.Retailer) error {
	query := `
		INSERT INTO retailers (
			name, contact_email, contact_phone, commission_group_id, active
		) VALUES (?, ?, ?, ?, ?)
	`
	result, err := r.db.Exec(query,
		rt.Name,
		rt.ContactEmail,
		rt.ContactPhone,
		rt.CommissionGroupID,
		rt.Active,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	rt.ID = id
	return nil
}

func (r *retailerRepository) GetRetailerByID(id int64) (*models.Retailer, error) {
	rt := &models.Retailer{}
	query := `
		SELECT id, name, contact_email, contact_phone, commission_group_id, active,
		       created_at, updated_at
		FROM retailers
		WHERE id = ?
	`
	err := r.db.QueryRow(query, id).Scan(
		&rt.ID,
		&rt.Name,
		&rt.ContactEmail,
		&rt.ContactPhone,
		&rt.CommissionGroupID,
		&rt.Active,
		&rt.CreatedAt,
		&rt.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("retailer %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *retailerRepository) ListRetailers() ([]*models.Retailer, error) {
	query := `
		SELECT id, name, contact_email, contact_phone, commission_group_id, active,
		       created_at, updated_at
		FROM retailers
		ORDER BY name
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var retailers []*models.Retailer
	for rows.Next() {
		rt := &models.Retailer{}
		err := rows.Scan(
			&rt.ID,
			&rt.Name,
			&rt.ContactEmail,
			&rt.ContactPhone,
			&rt.CommissionGroupID,
			&rt.Active,
			&rt.CreatedAt,
			&rt.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		retailers = append(retailers, rt)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return retailers, nil
}

func (r *retailerRepository) UpdateRetailer(rt *models.Retailer) error {
	query := `
		UPDATE retailers
		SET name = ?,
			contact_email = ?,
			contact_phone = ?,
			commission_group_id = ?,
			active = ?,
			updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.Exec(query,
		rt.Name,
		rt.ContactEmail,
		rt.ContactPhone,
		rt.CommissionGroupID,
		rt.Active,
		time.Now(),
		rt.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("retailer %w", ErrNotFound)
	}
	return nil
}

func (r *retailerRepository) DeleteRetailer(id int64) error {
	result, err := r.db.Exec(`DELETE FROM retailers WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("retailer %w", ErrNotFound)
	}
	return nil
}
