package services

import (
	"database/sql"
	"fmt"

	"voucher-service/internal/models"
	"voucher-service/internal/repositories"
)

// CatalogService owns the admin CRUD surface: suppliers, commission groups,
// retailers, and terminals. Validation happens here so handlers stay thin.
type CatalogService struct {
	supplierRepo repositories.SupplierRepository
	groupRepo    repositories.CommissionGroupRepository
	retailerRepo repositories.RetailerRepository
	terminalRepo repositories.TerminalRepository
}

func NewCatalogService(
	supplierRepo repositories.SupplierRepository,
	groupRepo repositories.CommissionGroupRepository,
	retailerRepo repositories.RetailerRepository,
	terminalRepo repositories.TerminalRepository,
) *CatalogService {
	return &CatalogService{
		supplierRepo: supplierRepo,
		groupRepo:    groupRepo,
		retailerRepo: retailerRepo,
		terminalRepo: terminalRepo,
	}
}

// SupplierInput carries commission rates as pointers so an update can
// distinguish "reset to zero" from "leave unchanged", like Active does.
type SupplierInput struct {
	Name           string   `json:"name"`
	VendorID       string   `json:"vendor_id"`
	AmountUnit     string   `json:"amount_unit"`
	TotalComm      *float64 `json:"total_comm"`
	RetailerComm   *float64 `json:"retailer_comm"`
	SalesAgentComm *float64 `json:"sales_agent_comm"`
	Active         *bool    `json:"active"`
}

func validateRates(rates ...*float64) error {
	for _, rate := range rates {
		if rate != nil && (*rate < 0 || *rate > 1) {
			return fmt.Errorf("commission rates must be fractions between 0 and 1")
		}
	}
	return nil
}

func rateValue(rate *float64) float64 {
	if rate == nil {
		return 0
	}
	return *rate
}

func (c *CatalogService) CreateSupplier(input SupplierInput) (*models.Supplier, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if err := validateRates(input.TotalComm, input.RetailerComm, input.SalesAgentComm); err != nil {
		return nil, err
	}

	unit := input.AmountUnit
	if unit == "" {
		// Suppliers default to declaring amounts in cents.
		unit = models.UnitMinor
	}
	if unit != models.UnitBase && unit != models.UnitMinor {
		return nil, fmt.Errorf("amount_unit must be %q or %q", models.UnitBase, models.UnitMinor)
	}

	supplier := &models.Supplier{
		Name:           input.Name,
		VendorID:       input.VendorID,
		AmountUnit:     unit,
		TotalComm:      rateValue(input.TotalComm),
		RetailerComm:   rateValue(input.RetailerComm),
		SalesAgentComm: rateValue(input.SalesAgentComm),
		Active:         true,
	}
	if input.Active != nil {
		supplier.Active = *input.Active
	}

	if err := c.supplierRepo.InsertSupplier(supplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %v", err)
	}
	return supplier, nil
}

func (c *CatalogService) GetSupplier(id int64) (*models.Supplier, error) {
	return c.supplierRepo.GetSupplierByID(id)
}

func (c *CatalogService) ListSuppliers() ([]*models.Supplier, error) {
	return c.supplierRepo.ListSuppliers()
}

func (c *CatalogService) UpdateSupplier(id int64, input SupplierInput) (*models.Supplier, error) {
	supplier, err := c.supplierRepo.GetSupplierByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		supplier.Name = input.Name
	}
	if input.VendorID != "" {
		supplier.VendorID = input.VendorID
	}
	if input.AmountUnit != "" {
		if input.AmountUnit != models.UnitBase && input.AmountUnit != models.UnitMinor {
			return nil, fmt.Errorf("amount_unit must be %q or %q", models.UnitBase, models.UnitMinor)
		}
		supplier.AmountUnit = input.AmountUnit
	}
	if err := validateRates(input.TotalComm, input.RetailerComm, input.SalesAgentComm); err != nil {
		return nil, err
	}
	if input.TotalComm != nil {
		supplier.TotalComm = *input.TotalComm
	}
	if input.RetailerComm != nil {
		supplier.RetailerComm = *input.RetailerComm
	}
	if input.SalesAgentComm != nil {
		supplier.SalesAgentComm = *input.SalesAgentComm
	}
	if input.Active != nil {
		supplier.Active = *input.Active
	}

	if err := c.supplierRepo.UpdateSupplier(supplier); err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}
	return supplier, nil
}

func (c *CatalogService) DeleteSupplier(id int64) error {
	return c.supplierRepo.DeleteSupplier(id)
}

type CommissionGroupInput struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	TotalComm      *float64 `json:"total_comm"`
	RetailerComm   *float64 `json:"retailer_comm"`
	SalesAgentComm *float64 `json:"sales_agent_comm"`
}

func (c *CatalogService) CreateCommissionGroup(input CommissionGroupInput) (*models.CommissionGroup, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if err := validateRates(input.TotalComm, input.RetailerComm, input.SalesAgentComm); err != nil {
		return nil, err
	}

	group := &models.CommissionGroup{
		Name:           input.Name,
		Description:    input.Description,
		TotalComm:      rateValue(input.TotalComm),
		RetailerComm:   rateValue(input.RetailerComm),
		SalesAgentComm: rateValue(input.SalesAgentComm),
	}
	if err := c.groupRepo.InsertCommissionGroup(group); err != nil {
		return nil, fmt.Errorf("failed to create commission group: %v", err)
	}
	return group, nil
}

func (c *CatalogService) GetCommissionGroup(id int64) (*models.CommissionGroup, error) {
	return c.groupRepo.GetCommissionGroupByID(id)
}

func (c *CatalogService) ListCommissionGroups() ([]*models.CommissionGroup, error) {
	return c.groupRepo.ListCommissionGroups()
}

func (c *CatalogService) UpdateCommissionGroup(id int64, input CommissionGroupInput) (*models.CommissionGroup, error) {
	group, err := c.groupRepo.GetCommissionGroupByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		group.Name = input.Name
	}
	if input.Description != "" {
		group.Description = input.Description
	}
	if err := validateRates(input.TotalComm, input.RetailerComm, input.SalesAgentComm); err != nil {
		return nil, err
	}
	if input.TotalComm != nil {
		group.TotalComm = *input.TotalComm
	}
	if input.RetailerComm != nil {
		group.RetailerComm = *input.RetailerComm
	}
	if input.SalesAgentComm != nil {
		group.SalesAgentComm = *input.SalesAgentComm
	}

	if err := c.groupRepo.UpdateCommissionGroup(group); err != nil {
		return nil, fmt.Errorf("failed to update commission group: %w", err)
	}
	return group, nil
}

func (c *CatalogService) DeleteCommissionGroup(id int64) error {
	return c.groupRepo.DeleteCommissionGroup(id)
}

type RetailerInput struct {
	Name              string `json:"name"`
	ContactEmail      string `json:"contact_email"`
	ContactPhone      string `json:"contact_phone"`
	CommissionGroupID int64  `json:"commission_group_id"`
	Active            *bool  `json:"active"`
}

func (c *CatalogService) CreateRetailer(input RetailerInput) (*models.Retailer, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	retailer := &models.Retailer{
		Name:         input.Name,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Active:       true,
	}
	if input.CommissionGroupID != 0 {
		if _, err := c.groupRepo.GetCommissionGroupByID(input.CommissionGroupID); err != nil {
			return nil, err
		}
		retailer.CommissionGroupID = sql.NullInt64{Int64: input.CommissionGroupID, Valid: true}
	}
	if input.Active != nil {
		retailer.Active = *input.Active
	}

	if err := c.retailerRepo.InsertRetailer(retailer); err != nil {
		return nil, fmt.Errorf("failed to create retailer: %v", err)
	}
	return retailer, nil
}

func (c *CatalogService) GetRetailer(id int64) (*models.Retailer, error) {
	return c.retailerRepo.GetRetailerByID(id)
}

func (c *CatalogService) ListRetailers() ([]*models.Retailer, error) {
	return c.retailerRepo.ListRetailers()
}

func (c *CatalogService) UpdateRetailer(id int64, input RetailerInput) (*models.Retailer, error) {
	retailer, err := c.retailerRepo.GetRetailerByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		retailer.Name = input.Name
	}
	if input.ContactEmail != "" {
		retailer.ContactEmail = input.ContactEmail
	}
	if input.ContactPhone != "" {
		retailer.ContactPhone = input.ContactPhone
	}
	if input.CommissionGroupID != 0 {
		if _, err := c.groupRepo.GetCommissionGroupByID(input.CommissionGroupID); err != nil {
			return nil, err
		}
		retailer.CommissionGroupID = sql.NullInt64{Int64: input.CommissionGroupID, Valid: true}
	}
	if input.Active != nil {
		retailer.Active = *input.Active
	}

	if err := c.retailerRepo.UpdateRetailer(retailer); err != nil {
		return nil, fmt.Errorf("failed to update retailer: %w", err)
	}
	return retailer, nil
}

func (c *CatalogService) DeleteRetailer(id int64) error {
	return c.retailerRepo.DeleteRetailer(id)
}

type TerminalInput struct {
	RetailerID  int64  `json:"retailer_id"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

func (c *CatalogService) CreateTerminal(input TerminalInput) (*models.Terminal, error) {
	if input.Code == "" {
		return nil, fmt.Errorf("code is required")
	}
	if _, err := c.retailerRepo.GetRetailerByID(input.RetailerID); err != nil {
		return nil, err
	}

	terminal := &models.Terminal{
		RetailerID:  input.RetailerID,
		Code:        input.Code,
		Description: input.Description,
		Active:      true,
	}
	if input.Active != nil {
		terminal.Active = *input.Active
	}

	if err := c.terminalRepo.InsertTerminal(terminal); err != nil {
		return nil, fmt.Errorf("failed to create terminal: %v", err)
	}
	return terminal, nil
}

func (c *CatalogService) GetTerminal(id int64) (*models.Terminal, error) {
	return c.terminalRepo.GetTerminalByID(id)
}

func (c *CatalogService) ListTerminals(retailerID int64) ([]*models.Terminal, error) {
	return c.terminalRepo.ListTerminals(retailerID)
}

func (c *CatalogService) UpdateTerminal(id int64, input TerminalInput) (*models.Terminal, error) {
	terminal, err := c.terminalRepo.GetTerminalByID(id)
	if err != nil {
		return nil, err
	}

	if input.RetailerID != 0 {
		if _, err := c.retailerRepo.GetRetailerByID(input.RetailerID); err != nil {
			return nil, err
		}
		terminal.RetailerID = input.RetailerID
	}
	if input.Code != "" {
		terminal.Code = input.Code
	}
	if input.Description != "" {
		terminal.Description = input.Description
	}
	if input.Active != nil {
		terminal.Active = *input.Active
	}

	if err := c.terminalRepo.UpdateTerminal(terminal); err != nil {
		return nil, fmt.Errorf("failed to update terminal: %w", err)
	}
	return terminal, nil
}

func (c *CatalogService) DeleteTerminal(id int64) error {
	return c.terminalRepo.DeleteTerminal(id)
}
