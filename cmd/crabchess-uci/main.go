// Command crabchess-uci is the UCI entry point: it wires up logging, builds
// an Engine, and hands stdin/stdout to the protocol loop.
package main

import (
	"flag"
	"os"

	logging "github.com/op/go-logging"

	"github.com/TrebbleBiscuit/crab-chess/internal/engine"
	crablog "github.com/TrebbleBiscuit/crab-chess/internal/log"
	"github.com/TrebbleBiscuit/crab-chess/internal/uci"
)

var (
	logLevel = flag.String("loglevel", "info", "log level: debug, info, warning, error")
	logFile  = flag.String("logfile", "", "path to write logs to (default: stderr)")
)

func main() {
	flag.Parse()

	var w *os.File = os.Stderr
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			logging.MustGetLogger("main").Fatalf("opening log file %q: %v", *logFile, err)
		}
		defer f.Close()
		w = f
	}
	crablog.Configure(w, crablog.ParseLevel(*logLevel))

	eng := engine.New()
	protocol := uci.New(eng, os.Stdout)
	protocol.Run(os.Stdin)
}
