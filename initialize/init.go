package initialize

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"netsketch/app/controllers"
	"netsketch/app/db"
	jwtutil "netsketch/app/jwt"
	"netsketch/app/middleware"
	"netsketch/app/models"
	"netsketch/app/repo"
	"netsketch/app/services"
	"netsketch/config"
	"netsketch/global"
	"netsketch/router"
)

type App struct {
	Cfg     config.Config
	DB      *gorm.DB
	Router  http.Handler
	Auth    *controllers.AuthController
	Nets    *controllers.NetworkController
	Admin   *controllers.AdminController
	Users   *services.UserService
	NetSvc  *services.NetworkService
	Configs *services.ConfigService
}

func Build(configPath string) (*App, error) {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	global.Config = cfg

	// Connect DB
	gdb, err := db.Connect(db.Config{
		Driver: cfg.DB.Driver, Host: cfg.DB.Host, Port: cfg.DB.Port,
		User: cfg.DB.User, Password: cfg.DB.Pass, DBName: cfg.DB.Name, Path: cfg.DB.Path,
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	global.Mdb = gdb

	// Migrate
	if err := gdb.AutoMigrate(&models.User{}, &models.Network{}, &models.Node{}, &models.Connection{}, &models.AccessGrant{}, &models.EditorConfig{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// Services
	userRepo := repo.NewUserRepository(gdb)
	netRepo := repo.NewNetworkRepository(gdb)
	cfgRepo := repo.NewConfigRepository(gdb)
	userSvc := services.NewUserService(userRepo, uuid.NewString)
	netSvc := services.NewNetworkService(netRepo, userRepo, uuid.NewString, global.Logger)
	cfgSvc := services.NewConfigService(cfgRepo)
	if err := userSvc.EnsureAdmin(cfg.Admin.Username, cfg.Admin.Password); err != nil {
		global.Logger.Warn().Err(err).Msg("admin bootstrap failed")
	}

	// Controllers
	signer := &jwtutil.Signer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, ExpMin: cfg.JWT.ExpMin}
	authCtrl := controllers.NewAuthController(userSvc, signer)
	netCtrl := controllers.NewNetworkController(netSvc)
	cfgCtrl := controllers.NewConfigController(cfgSvc)
	adminCtrl := controllers.NewAdminController(userSvc)
	mw := &middleware.Auth{Signer: signer}

	// Router
	h := router.NewRouter(authCtrl, netCtrl, cfgCtrl, adminCtrl, mw)
	// Wrap with logging middleware
	h = middleware.Logging(h)

	return &App{Cfg: cfg, DB: gdb, Router: h, Auth: authCtrl, Nets: netCtrl, Admin: adminCtrl, Users: userSvc, NetSvc: netSvc, Configs: cfgSvc}, nil
}
