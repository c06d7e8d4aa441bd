package codec

import log "github.com/sirupsen/logrus"

var logger = log.New()

// SetLogger overrides the package-level logger, mirroring the teacher
// codebase's per-component SetXxxLogger setters (core/wallet.go's
// SetWalletLogger).
func SetLogger(l *log.Logger) { logger = l }
