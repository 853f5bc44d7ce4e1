package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"voucher-service/internal/models"
)

type TerminalRepository interface {
	InsertTerminal(t *models.Terminal) error
	GetTerminalByID(id int64) (*models.Terminal, error)
	GetTerminalByCode(code string) (*models.Terminal, error)
	ListTerminals(retailerID int64) ([]*models.Terminal, error)
	UpdateTerminal(t *models.Terminal) error
	DeleteTerminal(id int64) error
}

type terminalRepository struct {
	db *sql.DB
}

func NewTerminalRepository(db *sql.DB) TerminalRepository {
	return &terminalRepository{db: db}
}

func (r *terminalRepository) InsertTerminal(t *models.Terminal) error {
	query := `
		INSERT INTO terminals (
			retailer_id, code, description, active
		) VALUES (?, ?, ?, ?)
	`
	result, err := r.db.Exec(query,
		t.RetailerID,
		t.Code,
		t.Description,
		t.Active,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

func (r *terminalRepository) GetTerminalByID(id int64) (*models.Terminal, error) {
	t := &models.Terminal{}
	query := `
		SELECT id, retailer_id, code, description, active, created_at, updated_at
		FROM terminals
		WHERE id = ?
	`
	err := r.db.QueryRow(query, id).Scan(
		&t.ID,
		&t.RetailerID,
		&t.Code,
		&t.Description,
		&t.Active,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("terminal %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *terminalRepository) GetTerminalByCode(code string) (*models.Terminal, error) {
	t := &models.Terminal{}
	query := `
		SELECT id, retailer_id, code, description, active, created_at, updated_at
		FROM terminals
		WHERE code = ?
	`
	err := r.db.QueryRow(query, code).Scan(
		&t.ID,
		&t.RetailerID,
		&t.Code,
		&t.Description,
		&t.Active,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("terminal %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTerminals returns every terminal, or only a retailer's terminals when
// retailerID is non-zero.
func (r *terminalRepository) ListTerminals(retailerID int64) ([]*models.Terminal, error) {
	query := `
		SELECT id, retailer_id, code, description, active, created_at, updated_at
		FROM terminals
	`
	args := []interface{}{}
	if retailerID != 0 {
		query += ` WHERE retailer_id = ?`
		args = append(args, retailerID)
	}
	query += ` ORDER BY code`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terminals []*models.Terminal
	for rows.Next() {
		t := &models.Terminal{}
		err := rows.Scan(
			&t.ID,
			&t.RetailerID,
			&t.Code,
			&t.Description,
			&t.Active,
			&t.CreatedAt,
			&t.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		terminals = append(terminals, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return terminals, nil
}

func (r *terminalRepository) UpdateTerminal(t *models.Terminal) error {
	query := `
		UPDATE terminals
		SET retailer_id = ?,
			code = ?,
			description = ?,
			active = ?,
			updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.Exec(query,
		t.RetailerID,
		t.Code,
		t.Description,
		t.Active,
		time.Now(),
		t.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("terminal %w", ErrNotFound)
	}
	return nil
}

func (r *terminalRepository) DeleteTerminal(id int64) error {
	result, err := r.db.Exec(`DELETE FROM terminals WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("terminal %w", ErrNotFound)
	}
	return nil
}
