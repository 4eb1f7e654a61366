package router

import (
	"net/http"

	"netsketch/app/controllers"
	"netsketch/app/middleware"
)

func NewRouter(authCtrl *controllers.AuthController, netCtrl *controllers.NetworkController, cfgCtrl *controllers.ConfigController, adminCtrl *controllers.AdminController, mw *middleware.Auth) http.Handler {
	mux := http.NewServeMux()
	// public
	mux.HandleFunc("POST /login", authCtrl.Login)

	// networks
	mux.Handle("GET /networks", mw.RequireAuth(http.HandlerFunc(netCtrl.List)))
	mux.Handle("POST /networks", mw.RequireAuth(http.HandlerFunc(netCtrl.Create)))
	mux.Handle("GET /networks/{id}/layout", mw.RequireAuth(http.HandlerFunc(netCtrl.GetLayout)))
	mux.Handle("POST /networks/{id}/layout", mw.RequireAuth(http.HandlerFunc(netCtrl.SaveLayout)))
	mux.Handle("GET /networks/{id}/export", mw.RequireAuth(http.HandlerFunc(netCtrl.Export)))
	mux.Handle("DELETE /networks/{id}", mw.RequireAuth(http.HandlerFunc(netCtrl.Delete)))
	mux.Handle("GET /networks/{id}/access", mw.RequireAuth(http.HandlerFunc(netCtrl.GetAccess)))
	mux.Handle("PUT /networks/{id}/access", mw.RequireAuth(http.HandlerFunc(netCtrl.SetAccess)))

	// per-user editor preferences
	mux.Handle("GET /editor/config", mw.RequireAuth(http.HandlerFunc(cfgCtrl.Get)))
	mux.Handle("POST /editor/config", mw.RequireAuth(http.HandlerFunc(cfgCtrl.Set)))

	// admin-only user management
	mux.Handle("GET /admin/users", mw.RequireAdmin(http.HandlerFunc(adminCtrl.ListUsers)))
	mux.Handle("POST /admin/users", mw.RequireAdmin(http.HandlerFunc(adminCtrl.CreateUser)))
	mux.Handle("PUT /admin/users/{id}", mw.RequireAdmin(http.HandlerFunc(adminCtrl.UpdateUser)))
	mux.Handle("DELETE /admin/users/{id}", mw.RequireAdmin(http.HandlerFunc(adminCtrl.DeleteUser)))
	mux.Handle("POST /admin/users/{id}/password", mw.RequireAdmin(http.HandlerFunc(adminCtrl.ResetPassword)))

	return mux
}
