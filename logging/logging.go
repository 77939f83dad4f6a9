// Package logging configures the shared logrus logger used by every package.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Setup applies the requested level and the text formatter. Unknown levels
// fall back to info.
func Setup(level string) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{ForceColors: true, FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithError(err).Warnf("unknown log level %q, using info", level)
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// For returns a logger tagged with the given component name.
func For(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}
