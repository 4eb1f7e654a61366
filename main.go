package main

import (
	"flag"
	"fmt"
	"os"

	"netsketch/global"
	"netsketch/initialize"
	"netsketch/server"
)

func main() {
	cfgPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	flag.Parse()

	app, err := initialize.Build(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init:", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf("%s:%d", app.Cfg.Server.Host, app.Cfg.Server.Port)
	global.Logger.Info().Str("addr", addr).Msg("listening")
	if err := server.StartHTTPServer(app.Cfg.Server.Host, app.Cfg.Server.Port, app.Router); err != nil {
		global.Logger.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
