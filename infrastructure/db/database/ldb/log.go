package ldb

import "github.com/Vecno-Foundation/vecnod/infrastructure/logger"

var log = logger.RegisterSubSystem("LDB")
