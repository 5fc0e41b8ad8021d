// Command loadnames creates one customer per line of a names file through
// the REST API.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"

	"sdrdemo/internal/loader"
)

func main() {
	file := flag.String("file", "names.txt", "file with one full name per line")
	url := flag.String("url", "http://localhost:8080/sdrdemo/rest/customer", "customer collection URL")
	verbose := flag.Bool("v", false, "log every created customer")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("could not open names file")
	}
	defer f.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	l := &loader.Loader{
		Client: &http.Client{Timeout: 10 * time.Second},
		URL:    *url,
		Logger: log,
	}
	n, err := l.Load(ctx, f)
	if err != nil {
		log.Fatal().Err(err).Int("created", n).Msg("loading stopped")
	}
	log.Info().Int("created", n).Msg("All done!")
}
