package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"voucher-service/internal/models"
)

type CommissionGroupRepository interface {
	InsertCommissionGroup(g *models.CommissionGroup) error
	GetCommissionGroupByID(id int64) (*models.CommissionGroup, error)
	ListCommissionGroups() ([]*models.CommissionGroup, error)
	UpdateCommissionGroup(g *models.CommissionGroup) error
	DeleteCommissionGroup(id int64) error
}

type commissionGroupRepository struct {
	db *sql.DB
}

func NewCommissionGroupRepository(db *sql.DB) CommissionGroupRepository {
	return &commissionGroupRepository{db: db}
}

func (r *commissionGroupRepository) InsertCommissionGroup(g *models.CommissionGroup) error {
	query := `
		INSERT INTO commission_groups (
			name, description, total_comm, retailer_comm, sales_agent_comm
		) VALUES (?, ?, ?, ?, ?)
	`
	result, err := r.db.Exec(query,
		g.Name,
		g.Description,
		g.TotalComm,
		g.RetailerComm,
		g.SalesAgentComm,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = id
	return nil
}

func (r *commissionGroupRepository) GetCommissionGroupByID(id int64) (*models.CommissionGroup, error) {
	g := &models.CommissionGroup{}
	query := `
		SELECT id, name, description, total_comm, retailer_comm, sales_agent_comm,
		       created_at, updated_at
		FROM commission_groups
		WHERE id = ?
	`
	err := r.db.QueryRow(query, id).Scan(
		&g.ID,
		&g.Name,
		&g.Description,
		&g.TotalComm,
		&g.RetailerComm,
		&g.SalesAgentComm,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("commission group %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *commissionGroupRepository) ListCommissionGroups() ([]*models.CommissionGroup, error) {
	query := `
		SELECT id, name, description, total_comm, retailer_comm, sales_agent_comm,
		       created_at, updated_at
		FROM commission_groups
		ORDER BY name
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*models.CommissionGroup
	for rows.Next() {
		g := &models.CommissionGroup{}
		err := rows.Scan(
			&g.ID,
			&g.Name,
			&g.Description,
			&g.TotalComm,
			&g.RetailerComm,
			&g.SalesAgentComm,
			&g.CreatedAt,
			&g.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *commissionGroupRepository) UpdateCommissionGroup(g *models.CommissionGroup) error {
	query := `
		UPDATE commission_groups
		SET name = ?,
			description = ?,
			total_comm = ?,
			retailer_comm = ?,
			sales_agent_comm = ?,
			updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.Exec(query,
		g.Name,
		g.Description,
		g.TotalComm,
		g.RetailerComm,
		g.SalesAgentComm,
		time.Now(),
		g.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("commission group %w", ErrNotFound)
	}
	return nil
}

func (r *commissionGroupRepository) DeleteCommissionGroup(id int64) error {
	result, err := r.db.Exec(`DELETE FROM commission_groups WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("commission group %w", ErrNotFound)
	}
	return nil
}
