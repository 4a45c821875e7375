package trusteddata

import (
	"github.com/Vecno-Foundation/vecnod/infrastructure/logger"
)

var log = logger.RegisterSubSystem("PROT")
