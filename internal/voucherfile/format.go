package voucherfile

import (
	"errors"
	"fmt"
	"strings"
)

// Format describes one supplier's flat-file layout as data: the line prefix
// that selects voucher lines, the field delimiter, the marker that must appear
// in the signature field, and the positions of the interesting columns.
// Negative field indices count from the end of the line, so pipe-delimited
// files with extra metadata columns still resolve the serial number and PIN
// correctly (PIN is always the last field, serial the second-to-last).
type Format struct {
	Supplier       string
	LinePrefix     string
	Delimiter      string
	Marker         string
	SignatureField int
	TypeField      int
	AmountField    int
	ExpiryField    int
	SerialField    int
	PINField       int
	MinFields      int
}

var (
	Ringa = Format{
		Supplier:       "Ringa",
		LinePrefix:     "D",
		Delimiter:      "|",
		Marker:         "RINGA",
		SignatureField: 1,
		TypeField:      1,
		AmountField:    2,
		ExpiryField:    5,
		SerialField:    -2,
		PINField:       -1,
		MinFields:      8,
	}

	Hollywoodbets = Format{
		Supplier:       "Hollywoodbets",
		LinePrefix:     "D|",
		Delimiter:      "|",
		Marker:         "HWB",
		SignatureField: 1,
		TypeField:      1,
		AmountField:    2,
		ExpiryField:    5,
		SerialField:    -2,
		PINField:       -1,
		MinFields:      8,
	}

	Easyload = Format{
		Supplier:       "Easyload",
		LinePrefix:     "Easyload",
		Delimiter:      ",",
		Marker:         "Easyload",
		SignatureField: 0,
		TypeField:      0,
		AmountField:    1,
		ExpiryField:    -1,
		SerialField:    2,
		PINField:       3,
		MinFields:      5,
	}
)

var formats = []Format{Ringa, Hollywoodbets, Easyload}

// ErrUnknownSupplier is wrapped when no file format is registered for a
// supplier name.
var ErrUnknownSupplier = errors.New("no voucher file format registered")

// FormatForSupplier resolves the file format for a supplier by name. The
// lookup is resolved once at the start of an upload; everything downstream
// works off the returned Format value.
func FormatForSupplier(name string) (Format, error) {
	for _, f := range formats {
		if strings.EqualFold(f.Supplier, name) {
			return f, nil
		}
	}
	return Format{}, fmt.Errorf("%w for supplier %q", ErrUnknownSupplier, name)
}

// field returns the column at idx, counting from the end when idx is negative.
func field(cols []string, idx int) string {
	if idx < 0 {
		idx = len(cols) + idx
	}
	if idx < 0 || idx >= len(cols) {
		return ""
	}
	return strings.TrimSpace(cols[idx])
}
