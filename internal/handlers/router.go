package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"voucher-service/internal/config"
	"voucher-service/internal/logger"
	"voucher-service/internal/repositories"
	"voucher-service/internal/services"
)

func SetupRouter(db *sql.DB, cfg *config.Config) *mux.Router {
	supplierRepo := repositories.NewSupplierRepository(db)
	groupRepo := repositories.NewCommissionGroupRepository(db)
	retailerRepo := repositories.NewRetailerRepository(db)
	terminalRepo := repositories.NewTerminalRepository(db)
	voucherRepo := repositories.NewVoucherRepository(db)

	catalogService := services.NewCatalogService(supplierRepo, groupRepo, retailerRepo, terminalRepo)
	uploadService := services.NewUploadService(supplierRepo, voucherRepo)
	salesService := services.NewSalesService(voucherRepo, terminalRepo)
	reportService := services.NewReportService(voucherRepo)

	supplierHandler := NewSupplierHandler(catalogService)
	groupHandler := NewCommissionGroupHandler(catalogService)
	retailerHandler := NewRetailerHandler(catalogService)
	terminalHandler := NewTerminalHandler(catalogService)
	voucherHandler := NewVoucherHandler(uploadService, salesService, reportService)
	reportHandler := NewReportHandler(reportService)

	router := mux.NewRouter()

	api := router.PathPrefix("/api/v1").Subrouter()

	api.Use(loggingMiddleware)
	api.Use(jsonContentTypeMiddleware)

	api.HandleFunc("/suppliers", supplierHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/suppliers", supplierHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/suppliers/{id:[0-9]+}", supplierHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/suppliers/{id:[0-9]+}", supplierHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/suppliers/{id:[0-9]+}", supplierHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/commission-groups", groupHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/commission-groups", groupHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/commission-groups/{id:[0-9]+}", groupHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/commission-groups/{id:[0-9]+}", groupHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/commission-groups/{id:[0-9]+}", groupHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/retailers", retailerHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/retailers", retailerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/retailers/{id:[0-9]+}", retailerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/retailers/{id:[0-9]+}", retailerHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/retailers/{id:[0-9]+}", retailerHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/terminals", terminalHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/terminals", terminalHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/terminals/{id:[0-9]+}", terminalHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/terminals/{id:[0-9]+}", terminalHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/terminals/{id:[0-9]+}", terminalHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/vouchers/upload", voucherHandler.Upload).Methods(http.MethodPost)
	api.HandleFunc("/vouchers", voucherHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/vouchers/expire", voucherHandler.Expire).Methods(http.MethodPost)
	api.HandleFunc("/vouchers/{serial}/sell", voucherHandler.Sell).Methods(http.MethodPost)

	api.HandleFunc("/reports/inventory", reportHandler.InventorySummary).Methods(http.MethodGet)

	// CSV export sets its own content type, so it stays off the JSON subrouter.
	router.HandleFunc("/api/v1/reports/vouchers/export", reportHandler.ExportVouchers).Methods(http.MethodGet)

	router.HandleFunc("/health", healthCheckHandler).Methods(http.MethodGet)

	return router
}

func loggingMiddleware(next http.Handler) http.Handler {
	log := logger.WithComponent("http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	})
}

func jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status": "healthy",
	}
	respondWithJSON(w, http.StatusOK, response)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Error marshaling JSON response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
