package signingrequest

import log "github.com/sirupsen/logrus"

var logger = log.New()

// SetLogger replaces this package's logger, mirroring codec.SetLogger.
func SetLogger(l *log.Logger) {
	logger = l
}
