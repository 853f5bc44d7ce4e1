package models

import (
	"database/sql"
	"time"
)

// Supplier is an upstream voucher provider with its own file format and
// commission contract. The commission rates stored here are the contract
// defaults applied to every voucher uploaded for the supplier.
type Supplier struct {
	ID             int64     `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	VendorID       string    `db:"vendor_id" json:"vendor_id"`
	AmountUnit     string    `db:"amount_unit" json:"amount_unit"`
	TotalComm      float64   `db:"total_comm" json:"total_comm"`
	RetailerComm   float64   `db:"retailer_comm" json:"retailer_comm"`
	SalesAgentComm float64   `db:"sales_agent_comm" json:"sales_agent_comm"`
	Active         bool      `db:"active" json:"active"`
	CreatedAt      time.Time `db:"created_at" json:"-"`
	UpdatedAt      time.Time `db:"updated_at" json:"-"`
}

// CommissionGroup is a named bundle of commission rates assigned to retailers.
type CommissionGroup struct {
	ID             int64     `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Description    string    `db:"description" json:"description"`
	TotalComm      float64   `db:"total_comm" json:"total_comm"`
	RetailerComm   float64   `db:"retailer_comm" json:"retailer_comm"`
	SalesAgentComm float64   `db:"sales_agent_comm" json:"sales_agent_comm"`
	CreatedAt      time.Time `db:"created_at" json:"-"`
	UpdatedAt      time.Time `db:"updated_at" json:"-"`
}

// Retailer is a shop selling vouchers through one or more terminals.
type Retailer struct {
	ID                int64         `db:"id" json:"id"`
	Name              string        `db:"name" json:"name"`
	ContactEmail      string        `db:"contact_email" json:"contact_email"`
	ContactPhone      string        `db:"contact_phone" json:"contact_phone"`
	CommissionGroupID sql.NullInt64 `db:"commission_group_id" json:"commission_group_id"`
	Active            bool          `db:"active" json:"active"`
	CreatedAt         time.Time     `db:"created_at" json:"-"`
	UpdatedAt         time.Time     `db:"updated_at" json:"-"`
}

// Terminal is a point-of-sale device registered to a retailer.
type Terminal struct {
	ID          int64     `db:"id" json:"id"`
	RetailerID  int64     `db:"retailer_id" json:"retailer_id"`
	Code        string    `db:"code" json:"code"`
	Description string    `db:"description" json:"description"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"-"`
	UpdatedAt   time.Time `db:"updated_at" json:"-"`
}

// Voucher is a persisted prepaid voucher. Financial fields are immutable
// after insertion; only Status transitions later (active -> sold/expired).
type Voucher struct {
	ID             int64     `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Category       string    `db:"category" json:"category"`
	Amount         float64   `db:"amount" json:"amount"`
	PIN            string    `db:"voucher_pin" json:"voucher_pin,omitempty"`
	SerialNumber   string    `db:"voucher_serial_number" json:"voucher_serial_number"`
	Source         string    `db:"source" json:"source"`
	Status         string    `db:"status" json:"status"`
	ExpiryDate     string    `db:"expiry_date" json:"expiry_date,omitempty"`
	SupplierID     int64     `db:"supplier_id" json:"supplier_id"`
	SupplierName   string    `db:"supplier_name" json:"supplier_name"`
	VendorID       string    `db:"vendor_id" json:"vendor_id"`
	TotalComm      float64   `db:"total_comm" json:"total_comm"`
	RetailerComm   float64   `db:"retailer_comm" json:"retailer_comm"`
	SalesAgentComm float64   `db:"sales_agent_comm" json:"sales_agent_comm"`
	Profit         float64   `db:"profit" json:"profit"`
	CreatedAt      time.Time `db:"created_at" json:"-"`
}

// VoucherSale records a voucher being sold through a terminal.
type VoucherSale struct {
	ID         int64     `db:"id" json:"id"`
	VoucherID  int64     `db:"voucher_id" json:"voucher_id"`
	TerminalID int64     `db:"terminal_id" json:"terminal_id"`
	SaleAmount float64   `db:"sale_amount" json:"sale_amount"`
	SoldAt     time.Time `db:"sold_at" json:"sold_at"`
}

// Voucher status constants
const (
	StatusActive  = "active"
	StatusSold    = "sold"
	StatusExpired = "expired"
)

// Voucher source constants
const (
	SourceManualUpload = "manual_upload"
)

// Supplier amount-unit constants. A supplier declaring amounts in the minor
// unit (cents) has face values divided by 100 before any commission math.
const (
	UnitBase  = "base"
	UnitMinor = "minor"
)
