package global

import (
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"netsketch/config"
)

var (
	Config config.Config
	Logger zerolog.Logger
	Mdb    *gorm.DB
)
