package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"voucher-service/internal/services"
)

type TerminalHandler struct {
	catalog *services.CatalogService
}

func NewTerminalHandler(catalog *services.CatalogService) *TerminalHandler {
	return &TerminalHandler{catalog: catalog}
}

func (h *TerminalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.TerminalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	terminal, err := h.catalog.CreateTerminal(input)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondWithJSON(w, http.StatusCreated, terminal)
}

func (h *TerminalHandler) List(w http.ResponseWriter, r *http.Request) {
	var retailerID int64
	if raw := r.URL.Query().Get("retailer_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid retailer_id")
			return
		}
		retailerID = id
	}

	terminals, err := h.catalog.ListTerminals(retailerID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, terminals)
}

func (h *TerminalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid terminal ID")
		return
	}

	terminal, err := h.catalog.GetTerminal(id)
	if err != nil {
		respondWithError(w, statusForLookup(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, terminal)
}

func (h *TerminalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid terminal ID")
		return
	}

	var input services.TerminalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	terminal, err := h.catalog.UpdateTerminal(id, input)
	if err != nil {
		respondWithError(w, statusForLookup(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, terminal)
}

func (h *TerminalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid terminal ID")
		return
	}

	if err := h.catalog.DeleteTerminal(id); err != nil {
		respondWithError(w, statusForLookup(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "terminal deleted"})
}
