package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"voucher-service/internal/repositories"
	"voucher-service/internal/services"
)

type SupplierHandler struct {
	catalog *services.CatalogService
}

func NewSupplierHandler(catalog *services.CatalogService) *SupplierHandler {
	return &SupplierHandler{catalog: catalog}
}

func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.SupplierInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	supplier, err := h.catalog.CreateSupplier(input)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondWithJSON(w, http.StatusCreated, supplier)
}

func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.catalog.ListSuppliers()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, suppliers)
}

func (h *SupplierHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid supplier ID")
		return
	}

	supplier, err := h.catalog.GetSupplier(id)
	if err != nil {
		respondWithError(w, statusForLookup(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, supplier)
}

func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid supplier ID")
		return
	}

	var input services.SupplierInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	supplier, err := h.catalog.UpdateSupplier(id, input)
	if err != nil {
		respondWithError(w, statusForLookup(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, supplier)
}

func (h *SupplierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid supplier ID")
		return
	}

	if err := h.catalog.DeleteSupplier(id); err != nil {
		respondWithError(w, statusForLookup(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "supplier deleted"})
}

func statusForLookup(err error) int {
	if errors.Is(err, repositories.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
