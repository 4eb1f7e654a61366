package controllers

import (
	"encoding/json"
	"net/http"

	"netsketch/app/dto"
	"netsketch/app/models"
	"netsketch/app/services"
)

type AdminController struct{ Users *services.UserService }

func NewAdminController(users *services.UserService) *AdminController {
	return &AdminController{Users: users}
}

func userView(u *models.User) dto.UserView {
	return dto.UserView{
		ID: u.ID, Username: u.Username, Role: u.Role, Email: u.Email,
		CreatedAt: u.CreatedAt, LastLogin: u.LastLogin,
	}
}

func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.Users.ListUsers()
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]dto.UserView, 0, len(users))
	for i := range users {
		out = append(out, userView(&users[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (c *AdminController) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	u, err := c.Users.CreateUser(req.Username, req.Password, req.Role, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, userView(u))
}

func (c *AdminController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateUserRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	u, err := c.Users.UpdateUser(r.PathValue("id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userView(u))
}

func (c *AdminController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if err := c.Users.DeleteUser(caller.ID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *AdminController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if err := c.Users.ResetPassword(r.PathValue("id"), req.Password); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
