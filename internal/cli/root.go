package cli

import (
	"context"
	"os"
)

// Execute runs the statesearch CLI with args from os.Args and returns the
// first command error. Logs go to stderr at info level, or debug with
// --verbose.
//
// Example:
//
//	func main() {
//	    ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	    defer cancel()
//	    if err := cli.Execute(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
func Execute(ctx context.Context) error {
	c := New(os.Stderr, LogInfo)
	return c.RootCommand().ExecuteContext(ctx)
}
