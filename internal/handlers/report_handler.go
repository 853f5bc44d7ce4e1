package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"voucher-service/internal/repositories"
	"voucher-service/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) InventorySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportService.InventorySummary()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, summary)
}

// ExportVouchers streams the filtered inventory as a CSV download.
func (h *ReportHandler) ExportVouchers(w http.ResponseWriter, r *http.Request) {
	filter := repositories.VoucherFilter{
		Status: r.URL.Query().Get("status"),
	}
	if raw := r.URL.Query().Get("supplier_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid supplier_id")
			return
		}
		filter.SupplierID = id
	}

	rows, err := h.reportService.ExportVouchers(filter)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	filename := fmt.Sprintf("vouchers-%s.csv", time.Now().Format("20060102-150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	writer := csv.NewWriter(w)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return
		}
	}
	writer.Flush()
}
