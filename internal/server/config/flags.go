package config

import (
	"flag"
	"os"
	"time"

	"github.com/medassist/symptomchecker/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-d string   PostgreSQL DSN
//	-k string   analysis provider API key
//	-m string   analysis provider model name
//	-r int      total analysis attempts
//	-b int      base backoff between analysis attempts, seconds
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. The backoff
// flag is accepted as an integer in seconds and converted to time.Duration.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k", "-m", "-r", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.OpenAIAPIKey, "k", config.OpenAIAPIKey, "analysis provider API key")
	fs.StringVar(&config.OpenAIModel, "m", config.OpenAIModel, "analysis provider model")

	fs.IntVar(&config.AnalysisMaxAttempts, "r", config.AnalysisMaxAttempts, "total analysis attempts")
	baseBackoff := fs.Int("b", int(config.AnalysisBaseBackoff.Seconds()), "base backoff between analysis attempts (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AnalysisBaseBackoff = time.Duration(*baseBackoff) * time.Second
}
