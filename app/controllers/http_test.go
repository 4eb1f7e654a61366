package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"netsketch/app/controllers"
	"netsketch/app/db"
	jwtutil "netsketch/app/jwt"
	"netsketch/app/middleware"
	"netsketch/app/models"
	"netsketch/app/repo"
	"netsketch/app/services"
	"netsketch/router"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	gdb, err := db.Connect(db.Config{Driver: "sqlite", Path: t.TempDir() + "/test.db"})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.Network{}, &models.Node{}, &models.Connection{}, &models.AccessGrant{}, &models.EditorConfig{}))

	userRepo := repo.NewUserRepository(gdb)
	netRepo := repo.NewNetworkRepository(gdb)
	cfgRepo := repo.NewConfigRepository(gdb)
	userSvc := services.NewUserService(userRepo, uuid.NewString)
	netSvc := services.NewNetworkService(netRepo, userRepo, uuid.NewString, zerolog.Nop())
	cfgSvc := services.NewConfigService(cfgRepo)
	require.NoError(t, userSvc.EnsureAdmin("admin", "admin123"))

	signer := &jwtutil.Signer{Secret: []byte("test-secret"), Issuer: "netsketch", ExpMin: 60}
	mw := &middleware.Auth{Signer: signer}
	h := router.NewRouter(
		controllers.NewAuthController(userSvc, signer),
		controllers.NewNetworkController(netSvc),
		controllers.NewConfigController(cfgSvc),
		controllers.NewAdminController(userSvc),
		mw,
	)
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func login(t *testing.T, ts *httptest.Server, username, password string) string {
	t.Helper()
	resp := doJSON(t, http.MethodPost, ts.URL+"/login", "", map[string]string{"username": username, "password": password})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

func TestLoginAndNetworkFlow(t *testing.T) {
	ts := newServer(t)
	token := login(t, ts, "admin", "admin123")

	// unauthenticated requests are rejected
	resp := doJSON(t, http.MethodGet, ts.URL+"/networks", "", nil)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// create a templated network
	resp = doJSON(t, http.MethodPost, ts.URL+"/networks", token, map[string]string{"name": "Office", "template": "office"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	require.NotEmpty(t, created.ID)

	// the layout comes back in the live-edit shape
	resp = doJSON(t, http.MethodGet, ts.URL+"/networks/"+created.ID+"/layout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var l struct {
		Nodes       []map[string]any `json:"nodes"`
		Connections []map[string]any `json:"connections"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&l))
	resp.Body.Close()
	require.Len(t, l.Nodes, 8)
	require.Len(t, l.Connections, 7)

	// unknown network ids and invisible networks look the same
	resp = doJSON(t, http.MethodGet, ts.URL+"/networks/nope/layout", token, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBadLoginRejected(t *testing.T) {
	ts := newServer(t)
	resp := doJSON(t, http.MethodPost, ts.URL+"/login", "", map[string]string{"username": "admin", "password": "wrong"})
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminEndpointsRequireAdminRole(t *testing.T) {
	ts := newServer(t)
	adminToken := login(t, ts, "admin", "admin123")

	resp := doJSON(t, http.MethodPost, ts.URL+"/admin/users", adminToken, map[string]string{"username": "bob", "password": "pw", "role": "user"})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	bobToken := login(t, ts, "bob", "pw")
	resp = doJSON(t, http.MethodPost, ts.URL+"/admin/users", bobToken, map[string]string{"username": "eve", "password": "pw"})
	resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// duplicate username conflicts
	resp = doJSON(t, http.MethodPost, ts.URL+"/admin/users", adminToken, map[string]string{"username": "bob", "password": "pw"})
	resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestEditorConfigEndpoints(t *testing.T) {
	ts := newServer(t)
	token := login(t, ts, "admin", "admin123")

	resp := doJSON(t, http.MethodGet, ts.URL+"/editor/config", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cfg struct {
		Types []string `json:"types"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cfg))
	resp.Body.Close()
	require.Equal(t, []string{"Router", "Switch", "PC"}, cfg.Types)

	resp = doJSON(t, http.MethodPost, ts.URL+"/editor/config", token, map[string]any{"types": []string{"Router", "Firewall"}})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, ts.URL+"/editor/config", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cfg))
	resp.Body.Close()
	require.Equal(t, []string{"Router", "Firewall"}, cfg.Types)
}
