package utxoindex

import (
	"github.com/Vecno-Foundation/vecnod/infrastructure/logger"
)

var log = logger.RegisterSubSystem("UTIN")
