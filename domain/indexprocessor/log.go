package indexprocessor

import (
	"github.com/Vecno-Foundation/vecnod/infrastructure/logger"
	"github.com/Vecno-Foundation/vecnod/util/panics"
)

var log = logger.RegisterSubSystem("INDX")
var spawn = panics.GoroutineWrapperFunc(log)
