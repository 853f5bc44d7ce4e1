package handlers

import (
	"encoding/json"
	"net/http"

	"voucher-service/internal/services"
)

type RetailerHandler struct {
	catalog *services.CatalogService
}

func NewRetailerHandler(catalog *services.CatalogService) *RetailerHandler {
	return &RetailerHandler{catalog: catalog}
}

func (h *RetailerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.RetailerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	retailer, err := h.catalog.CreateRetailer(input)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondWithJSON(w, http.StatusCreated, retailer)
}

func (h *RetailerHandler) List(w http.ResponseWriter, r *http.Request) {
	retailers, err := h.catalog.ListRetailers()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, retailers)
}

func (h *RetailerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid retailer ID")
		return
	}

	retailer, err := h.catalog.GetRetailer(id)
	if err != nil {
		respondWithError(w, statusForLookup(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, retailer)
}

func (h *RetailerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid retailer ID")
		return
	}

	var input services.RetailerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	retailer, err := h.catalog.UpdateRetailer(id, input)
	if err != nil {
		respondWithError(w, statusForLookup(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, retailer)
}

func (h *RetailerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid retailer ID")
		return
	}

	if err := h.catalog.DeleteRetailer(id); err != nil {
		respondWithError(w, statusForLookup(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "retailer deleted"})
}
