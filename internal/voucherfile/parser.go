package voucherfile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFile is wrapped when a file is rejected outright: no lines carry
// the format's prefix, the signature check fails, or nothing parses.
var ErrInvalidFile = errors.New("invalid voucher file")

// Entry is one voucher parsed out of a supplier file. Exists is set later by
// the duplicate check against the store.
type Entry struct {
	Type         string  `json:"type"`
	Amount       float64 `json:"amount"`
	SerialNumber string  `json:"serial_number"`
	PIN          string  `json:"pin"`
	ExpiryDate   string  `json:"expiry_date,omitempty"`
	Exists       bool    `json:"exists"`
}

// ParseResult is the outcome of parsing one uploaded file. SkippedLines counts
// rows dropped for a non-numeric amount or missing serial/PIN; those are
// treated as noise, not errors.
type ParseResult struct {
	Entries      []Entry
	SkippedLines int
}

// ClassifyLines selects the lines of a raw file that belong to the format and
// verifies the file is really for this supplier. It fails when no line
// carries the format's prefix, or when the first matching line's signature
// field does not contain the expected marker, so a file for one supplier fed
// to another produces no records at all.
func ClassifyLines(text string, f Format) ([]string, error) {
	var matched []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, "\r")
		if strings.HasPrefix(line, f.LinePrefix) {
			matched = append(matched, line)
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: not a valid %s file, no voucher lines found", ErrInvalidFile, f.Supplier)
	}

	signature := field(strings.Split(matched[0], f.Delimiter), f.SignatureField)
	if !strings.Contains(strings.ToUpper(signature), strings.ToUpper(f.Marker)) {
		return nil, fmt.Errorf("%w: not a valid %s file, signature %q does not contain %q", ErrInvalidFile, f.Supplier, signature, f.Marker)
	}

	return matched, nil
}

// ExtractEntries maps each classified line to an Entry by fixed field
// position. Lines with too few fields, a non-numeric amount, or an empty
// serial number or PIN are skipped without error; file order is preserved.
func ExtractEntries(lines []string, f Format) ParseResult {
	result := ParseResult{Entries: []Entry{}}

	for _, line := range lines {
		cols := strings.Split(line, f.Delimiter)
		if len(cols) < f.MinFields {
			result.SkippedLines++
			continue
		}

		amount, err := strconv.ParseFloat(field(cols, f.AmountField), 64)
		if err != nil || amount < 0 {
			result.SkippedLines++
			continue
		}

		serial := field(cols, f.SerialField)
		pin := field(cols, f.PINField)
		if serial == "" || pin == "" {
			result.SkippedLines++
			continue
		}

		result.Entries = append(result.Entries, Entry{
			Type:         field(cols, f.TypeField),
			Amount:       amount,
			SerialNumber: serial,
			PIN:          pin,
			ExpiryDate:   NormalizeDate(field(cols, f.ExpiryField)),
		})
	}

	return result
}

// Parse runs classification and extraction over a raw file for one supplier
// format. A file that classifies but yields zero valid entries is rejected
// the same way as one that fails the signature check.
func Parse(text string, f Format) (ParseResult, error) {
	lines, err := ClassifyLines(text, f)
	if err != nil {
		return ParseResult{}, err
	}

	result := ExtractEntries(lines, f)
	if len(result.Entries) == 0 {
		return ParseResult{}, fmt.Errorf("%w: not a valid %s file, no parsable voucher lines", ErrInvalidFile, f.Supplier)
	}
	return result, nil
}
