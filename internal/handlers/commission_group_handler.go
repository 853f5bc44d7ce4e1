package handlers

import (
	"encoding/json"
	"net/http"

	"voucher-service/internal/services"
)

type CommissionGroupHandler struct {
	catalog *services.CatalogService
}

func NewCommissionGroupHandler(catalog *services.CatalogService) *CommissionGroupHandler {
	return &CommissionGroupHandler{catalog: catalog}
}

func (h *CommissionGroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CommissionGroupInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	group, err := h.catalog.CreateCommissionGroup(input)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondWithJSON(w, http.StatusCreated, group)
}

func (h *CommissionGroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.catalog.ListCommissionGroups()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, groups)
}

func (h *CommissionGroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid commission group ID")
		return
	}

	group, err := h.catalog.GetCommissionGroup(id)
	if err != nil {
		respondWithError(w, statusForLookup(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, group)
}

func (h *CommissionGroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid commission group ID")
		return
	}

	var input services.CommissionGroupInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	group, err := h.catalog.UpdateCommissionGroup(id, input)
	if err != nil {
		respondWithError(w, statusForLookup(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, group)
}

func (h *CommissionGroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid commission group ID")
		return
	}

	if err := h.catalog.DeleteCommissionGroup(id); err != nil {
		respondWithError(w, statusForLookup(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "commission group deleted"})
}
