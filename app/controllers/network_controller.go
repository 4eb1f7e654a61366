package controllers

import (
	"encoding/json"
	"net/http"

	"netsketch/app/dto"
	"netsketch/app/layout"
	"netsketch/app/services"
)

type NetworkController struct{ Networks *services.NetworkService }

func NewNetworkController(networks *services.NetworkService) *NetworkController {
	return &NetworkController{Networks: networks}
}

func (c *NetworkController) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	nets, err := c.Networks.ListNetworks(caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nets)
}

func (c *NetworkController) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	var req dto.CreateNetworkRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	n, err := c.Networks.CreateNetwork(caller, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (c *NetworkController) GetLayout(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	l, err := c.Networks.GetLayout(caller, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (c *NetworkController) SaveLayout(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	var l layout.Layout
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid layout body"})
		return
	}
	if err := c.Networks.SaveLayout(caller, r.PathValue("id"), &l); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (c *NetworkController) Export(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	exp, err := c.Networks.ExportNetwork(caller, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exp)
}

func (c *NetworkController) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if err := c.Networks.DeleteNetwork(caller, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *NetworkController) GetAccess(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	grants, err := c.Networks.GetAccessSettings(caller, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grants)
}

func (c *NetworkController) SetAccess(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	var req dto.AccessSettingsRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if err := c.Networks.SetAccessSettings(caller, r.PathValue("id"), req); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
