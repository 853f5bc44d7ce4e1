package voucherfile

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func ringaLine(amount, serial, pin string) string {
	return fmt.Sprintf("D|RINGA0100|%s|1|0|31/12/2027|%s|%s", amount, serial, pin)
}

func TestFormatForSupplier(t *testing.T) {
	f, err := FormatForSupplier("ringa")
	if err != nil {
		t.Fatalf("FormatForSupplier(ringa) returned error: %v", err)
	}
	if f.Supplier != "Ringa" {
		t.Errorf("expected Ringa format, got %s", f.Supplier)
	}

	if _, err := FormatForSupplier("Glocell"); !errors.Is(err, ErrUnknownSupplier) {
		t.Errorf("expected ErrUnknownSupplier for supplier without a registered format, got %v", err)
	}
}

func TestClassifyLinesRejectsWrongSupplier(t *testing.T) {
	// A Hollywoodbets file fed to the Ringa handler: lines carry the D
	// prefix, but the signature token names HWB.
	file := strings.Join([]string{
		"H|HEADER|2027",
		"D|HWB500|500|1|0|25/12/2027|SER1|PIN1",
		"D|HWB500|500|1|0|25/12/2027|SER2|PIN2",
	}, "\n")

	_, err := ClassifyLines(file, Ringa)
	if err == nil {
		t.Fatal("expected signature rejection, got nil error")
	}
	if !errors.Is(err, ErrInvalidFile) {
		t.Errorf("rejection does not wrap ErrInvalidFile: %v", err)
	}
	if !strings.Contains(err.Error(), "not a valid Ringa file") {
		t.Errorf("unexpected rejection message: %v", err)
	}
}

func TestClassifyLinesRejectsFileWithNoVoucherLines(t *testing.T) {
	file := "H|HEADER|2027\nT|TRAILER|2"
	_, err := ClassifyLines(file, Hollywoodbets)
	if err == nil {
		t.Fatal("expected rejection for file with no voucher lines")
	}
}

func TestExtractEntriesSkipsInvalidLines(t *testing.T) {
	lines := make([]string, 0, 10)
	for i := 0; i < 8; i++ {
		lines = append(lines, ringaLine("5000", fmt.Sprintf("SER%d", i), fmt.Sprintf("PIN%d", i)))
	}
	lines = append(lines, ringaLine("abc", "SER8", "PIN8"))
	lines = append(lines, ringaLine("n/a", "SER9", "PIN9"))

	result := ExtractEntries(lines, Ringa)
	if len(result.Entries) != 8 {
		t.Fatalf("expected 8 entries, got %d", len(result.Entries))
	}
	if result.SkippedLines != 2 {
		t.Errorf("expected 2 skipped lines, got %d", result.SkippedLines)
	}
}

func TestExtractEntriesSkipsMissingSerialOrPIN(t *testing.T) {
	lines := []string{
		ringaLine("5000", "SER1", "PIN1"),
		ringaLine("5000", "", "PIN2"),
		ringaLine("5000", "SER3", ""),
	}

	result := ExtractEntries(lines, Ringa)
	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(result.Entries))
	}
	if result.SkippedLines != 2 {
		t.Errorf("expected 2 skipped lines, got %d", result.SkippedLines)
	}
}

func TestParseRingaWithExtraMetadataColumns(t *testing.T) {
	// PIN stays the last column and serial the second-to-last even when the
	// file carries extra metadata columns.
	file := "D|RINGA0100|5000|1|0|31/12/2027|batch-77|extra|SER100|PIN100"

	result, err := Parse(file, Ringa)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(result.Entries))
	}

	e := result.Entries[0]
	if e.Type != "RINGA0100" {
		t.Errorf("type = %q, want RINGA0100", e.Type)
	}
	if e.Amount != 5000 {
		t.Errorf("amount = %v, want 5000", e.Amount)
	}
	if e.SerialNumber != "SER100" {
		t.Errorf("serial = %q, want SER100", e.SerialNumber)
	}
	if e.PIN != "PIN100" {
		t.Errorf("pin = %q, want PIN100", e.PIN)
	}
	if e.ExpiryDate != "2027-12-31" {
		t.Errorf("expiry = %q, want 2027-12-31", e.ExpiryDate)
	}
}

func TestParseHollywoodbets(t *testing.T) {
	file := strings.Join([]string{
		"D|HWB500|500.00|1|0|25/12/2027|HWBSER1|HWBPIN1",
		"D|HWB500|500.00|1|0|25/12/2027|HWBSER2|HWBPIN2",
	}, "\r\n")

	result, err := Parse(file, Hollywoodbets)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Entries))
	}
	if result.Entries[0].Amount != 500 {
		t.Errorf("amount = %v, want 500", result.Entries[0].Amount)
	}
	if result.Entries[1].ExpiryDate != "2027-12-25" {
		t.Errorf("expiry = %q, want 2027-12-25", result.Entries[1].ExpiryDate)
	}
}

func TestParseEasyload(t *testing.T) {
	file := strings.Join([]string{
		"Easyload R50,50,ELSER1,ELPIN1,20270822",
		"Easyload R100,100,ELSER2,ELPIN2,20271130",
		"trailer line to ignore",
	}, "\n")

	result, err := Parse(file, Easyload)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Entries))
	}

	e := result.Entries[0]
	if e.Type != "Easyload R50" {
		t.Errorf("type = %q, want Easyload R50", e.Type)
	}
	if e.Amount != 50 {
		t.Errorf("amount = %v, want 50", e.Amount)
	}
	if e.SerialNumber != "ELSER1" || e.PIN != "ELPIN1" {
		t.Errorf("serial/pin = %q/%q", e.SerialNumber, e.PIN)
	}
	if e.ExpiryDate != "2027-08-22" {
		t.Errorf("expiry = %q, want 2027-08-22", e.ExpiryDate)
	}
}

func TestParsePreservesFileOrder(t *testing.T) {
	file := strings.Join([]string{
		ringaLine("1000", "FIRST", "P1"),
		ringaLine("2000", "SECOND", "P2"),
		ringaLine("3000", "THIRD", "P3"),
	}, "\n")

	result, err := Parse(file, Ringa)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	want := []string{"FIRST", "SECOND", "THIRD"}
	for i, serial := range want {
		if result.Entries[i].SerialNumber != serial {
			t.Errorf("entry %d serial = %q, want %q", i, result.Entries[i].SerialNumber, serial)
		}
	}
}

func TestParseRejectsAllNoiseFile(t *testing.T) {
	file := strings.Join([]string{
		ringaLine("abc", "SER1", "PIN1"),
		ringaLine("def", "SER2", "PIN2"),
	}, "\n")

	if _, err := Parse(file, Ringa); err == nil {
		t.Fatal("expected rejection when every line is unparsable")
	}
}
