package app

import (
	"github.com/Vecno-Foundation/vecnod/infrastructure/logger"
)

var log = logger.RegisterSubSystem("CMGR")
