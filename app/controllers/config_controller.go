package controllers

import (
	"io"
	"net/http"

	"netsketch/app/services"
)

type ConfigController struct{ Configs *services.ConfigService }

func NewConfigController(configs *services.ConfigService) *ConfigController {
	return &ConfigController{Configs: configs}
}

func (c *ConfigController) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	blob, err := c.Configs.Get(caller.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(blob))
}

func (c *ConfigController) Set(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "unreadable body"})
		return
	}
	if err := c.Configs.Set(caller.ID, string(body)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
