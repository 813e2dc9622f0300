// Command librarian is the desk terminal of the library circulation system.
//
// It runs one circulation operation per invocation against either a JSON snapshot file
// (the default) or PostgreSQL, e.g.
//
//	librarian seed
//	librarian borrow -as student1 -item <item id>
//	librarian -json overdue
//
// Exit codes: 0 success, 1 business rejection, 2 usage error, 3 infrastructure failure.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
