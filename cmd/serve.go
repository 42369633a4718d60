package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/etnz/allocation/server"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the positions table over HTTP" }
func (*serveCmd) Usage() string {
	return `alloc serve [-addr <host:port>]

  Serves the positions table as a web page. Files are read again on every
  request, and the state of the table (sort, expanded targets) lives in the
  page URL.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "localhost:8080", "address to listen on")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	h, err := server.NewHandler("Positions", func(context.Context) (server.Table, error) {
		t, err := LoadPositionTable()
		if err != nil {
			return nil, err
		}
		return t, nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	mux := http.NewServeMux()
	mux.Handle("/", h)
	srv := &http.Server{Addr: c.addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	// ctx is cancelled on interrupt, the server then drains its requests.
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()

	fmt.Fprintf(os.Stderr, "Serving positions on http://%s/\n", c.addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server stopped: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	<-stopped
	return subcommands.ExitSuccess
}
