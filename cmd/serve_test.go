package cmd

import (
	"context"
	"flag"
	"testing"
	"time"

	"github.com/google/subcommands"
)

// execServe runs the serve command on addr until ctx is done, and fails the
// test if it does not return in time.
func execServe(t *testing.T, ctx context.Context, addr string) subcommands.ExitStatus {
	t.Helper()
	cmd := &serveCmd{}
	f := flag.NewFlagSet("serve", flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse([]string{"-addr", addr}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	done := make(chan subcommands.ExitStatus, 1)
	go func() { done <- cmd.Execute(ctx, f) }()
	select {
	case status := <-done:
		return status
	case <-time.After(10 * time.Second):
		t.Fatalf("serve did not return")
		return subcommands.ExitFailure
	}
}

func TestServeCmd_Shutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	if got := execServe(t, ctx, "127.0.0.1:0"); got != subcommands.ExitSuccess {
		t.Errorf("Execute() = %v, want %v", got, subcommands.ExitSuccess)
	}
}

func TestServeCmd_BadAddress(t *testing.T) {
	if got := execServe(t, context.Background(), "127.0.0.1:-1"); got != subcommands.ExitFailure {
		t.Errorf("Execute() = %v, want %v", got, subcommands.ExitFailure)
	}
}
