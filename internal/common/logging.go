package common

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

// CommandLineFormatter prints bare log messages, without level or timestamp,
// for interactive CLI use.
type CommandLineFormatter struct{}

func (f *CommandLineFormatter) Format(entry *log.Entry) ([]byte, error) {
	return []byte(fmt.Sprintf("%s\n", entry.Message)), nil
}

// ConfigureCommandLineLogging sets up logging suitable for an interactive
// command line tool: bare messages on stderr.
func ConfigureCommandLineLogging() {
	log.SetFormatter(&CommandLineFormatter{})
	log.SetOutput(os.Stderr)
}
