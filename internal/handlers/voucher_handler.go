package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"voucher-service/internal/repositories"
	"voucher-service/internal/services"
	"voucher-service/internal/voucherfile"
)

// maxUploadBytes caps a voucher file upload. Supplier files are small text
// files; anything larger is a mistake.
const maxUploadBytes = 10 << 20

type VoucherHandler struct {
	uploadService *services.UploadService
	salesService  *services.SalesService
	reportService *services.ReportService
}

func NewVoucherHandler(
	uploadService *services.UploadService,
	salesService *services.SalesService,
	reportService *services.ReportService,
) *VoucherHandler {
	return &VoucherHandler{
		uploadService: uploadService,
		salesService:  salesService,
		reportService: reportService,
	}
}

// Upload ingests one supplier voucher file posted as multipart form data with
// a supplier_id field. The whole file is read into memory before parsing
// starts; the formats are line-oriented and not suitable for streaming.
func (h *VoucherHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	supplierID, err := strconv.ParseInt(r.FormValue("supplier_id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "supplier_id is required")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}

	result, err := h.uploadService.UploadFile(supplierID, data)
	if err != nil {
		respondWithError(w, statusForUpload(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

func (h *VoucherHandler) List(w http.ResponseWriter, r *http.Request) {
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

	vouchers, err := h.reportService.ListVouchers(filter)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, vouchers)
}

func (h *VoucherHandler) Sell(w http.ResponseWriter, r *http.Request) {
	serial := mux.Vars(r)["serial"]
	if serial == "" {
		respondWithError(w, http.StatusBadRequest, "Serial number is required")
		return
	}

	var input services.SaleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := h.salesService.SellVoucher(serial, input)
	if err != nil {
		respondWithError(w, statusForLookup(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

func (h *VoucherHandler) Expire(w http.ResponseWriter, r *http.Request) {
	count, err := h.salesService.ExpireVouchers()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]int64{"expired": count})
}

// statusForUpload maps pipeline failures to HTTP codes: format rejection is
// an operator mistake, store failures are server-side.
func statusForUpload(err error) int {
	switch {
	case errors.Is(err, voucherfile.ErrInvalidFile), errors.Is(err, voucherfile.ErrUnknownSupplier):
		return http.StatusBadRequest
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
