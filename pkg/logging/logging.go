// Package logging provides the structured logger shared by eosiogo's
// command-line and server surfaces.
//
// Version: v0.1.0
package logging

import (
	log "github.com/sirupsen/logrus"
)

// Version is the semantic version of this logging package.
const Version = "v0.1.0"

var globalLogger = log.New()

// SetLogger replaces the package-level logger, mirroring the teacher
// codebase's per-component SetXxxLogger setters.
func SetLogger(l *log.Logger) { globalLogger = l }

// Logger returns the current package-level logger.
func Logger() *log.Logger { return globalLogger }

// SetLevelByName parses name (trace|debug|info|warn|error|fatal|panic) and
// applies it to the package-level logger. An empty name selects info; an
// unknown name returns the parse error and leaves the level unchanged.
func SetLevelByName(name string) error {
	if name == "" {
		globalLogger.SetLevel(log.InfoLevel)
		return nil
	}
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return err
	}
	globalLogger.SetLevel(lvl)
	return nil
}
