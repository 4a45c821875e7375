package badgerdb

import "github.com/Vecno-Foundation/vecnod/infrastructure/logger"

var log = logger.RegisterSubSystem("BDGR")

// badgerLogger routes badger's internal logging into the BDGR subsystem.
// Badger is chatty at info level, so everything is shifted one level down.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{})   { log.Errorf(format, args...) }
func (badgerLogger) Warningf(format string, args ...interface{}) { log.Warnf(format, args...) }
func (badgerLogger) Infof(format string, args ...interface{})    { log.Debugf(format, args...) }
func (badgerLogger) Debugf(format string, args ...interface{})   { log.Tracef(format, args...) }
