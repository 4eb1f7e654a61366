package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"netsketch/app/db"
	"netsketch/app/models"
	"netsketch/app/repo"
)

type testEnv struct {
	gdb   *gorm.DB
	users *UserService
	nets  *NetworkService
	cfgs  *ConfigService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb, err := db.Connect(db.Config{Driver: "sqlite", Path: t.TempDir() + "/test.db"})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.Network{}, &models.Node{}, &models.Connection{}, &models.AccessGrant{}, &models.EditorConfig{}))
	userRepo := repo.NewUserRepository(gdb)
	netRepo := repo.NewNetworkRepository(gdb)
	cfgRepo := repo.NewConfigRepository(gdb)
	return &testEnv{
		gdb:   gdb,
		users: NewUserService(userRepo, uuid.NewString),
		nets:  NewNetworkService(netRepo, userRepo, uuid.NewString, zerolog.Nop()),
		cfgs:  NewConfigService(cfgRepo),
	}
}

// user registers an account and returns it as a caller identity.
func (e *testEnv) user(t *testing.T, username, role string) Caller {
	t.Helper()
	u, err := e.users.CreateUser(username, "pw-"+username, role, "")
	require.NoError(t, err)
	return Caller{ID: u.ID, Username: u.Username, Role: u.Role}
}
