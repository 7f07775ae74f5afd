package internal

import (
	"fmt"
	"io"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/fatih/color"
)

// DefaultInitialPadding is the default padding in the log library.
const DefaultInitialPadding = 3

// ExtraPadding is the double of the DefaultInitialPadding.
const ExtraPadding = DefaultInitialPadding * 2

// SetupLogging sends all log output through the CLI handler to w.
func SetupLogging(w io.Writer, debug bool) {
	cli.Default = cli.New(w)
	cli.Default.Padding = ExtraPadding

	log.SetHandler(cli.Default)

	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

// LogTitle pretty prints a given title.
func LogTitle(title string) {
	cli.Default.Padding = DefaultInitialPadding

	log.Info(color.New(color.Bold).Sprint(strings.ToUpper(title)))

	cli.Default.Padding = ExtraPadding
}

// LogCount prints a label and a count in aligned columns.
func LogCount(label string, n int) {
	log.Infof("%s%d", Pad(label+":"), n)
}

func Pad(s string) string {
	return fmt.Sprintf("%-50v", s)
}
