package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"voucher-service/internal/repositories"
	"voucher-service/internal/voucherfile"
)

func TestStatusForUpload(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "invalid file",
			err:  fmt.Errorf("%w: not a valid Ringa file, no voucher lines found", voucherfile.ErrInvalidFile),
			want: http.StatusBadRequest,
		},
		{
			name: "unregistered supplier format",
			err:  fmt.Errorf("%w for supplier %q", voucherfile.ErrUnknownSupplier, "Glocell"),
			want: http.StatusBadRequest,
		},
		{
			name: "supplier missing",
			err:  fmt.Errorf("failed to load supplier: %w", fmt.Errorf("supplier %w", repositories.ErrNotFound)),
			want: http.StatusNotFound,
		},
		{
			name: "store failure",
			err:  errors.New("store unreachable"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusForUpload(tt.err); got != tt.want {
				t.Errorf("statusForUpload(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestStatusForLookup(t *testing.T) {
	notFound := fmt.Errorf("failed to update supplier: %w", fmt.Errorf("supplier %w", repositories.ErrNotFound))
	if got := statusForLookup(notFound); got != http.StatusNotFound {
		t.Errorf("statusForLookup(%v) = %d, want %d", notFound, got, http.StatusNotFound)
	}
	if got := statusForLookup(errors.New("store unreachable")); got != http.StatusInternalServerError {
		t.Errorf("unclassified errors must map to %d, got %d", http.StatusInternalServerError, got)
	}
}
