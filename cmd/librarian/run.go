package main

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// run executes one librarian invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout io.Writer, stderr io.Writer) int {
	stdout, stderr = &syncWriter{w: stdout}, &syncWriter{w: stderr}

	opts, rest, err := parseOptions(args, stderr)
	if err != nil {
		return fail(stderr, err)
	}

	command, ok := subcommands[rest[0]]
	if !ok {
		return fail(stderr, errors.Join(errUsage, fmt.Errorf("unknown command %q", rest[0])))
	}

	a, err := newApp(ctx, opts, stdout, stderr)
	if err != nil {
		return fail(stderr, err)
	}

	err = command.run(ctx, a, rest[1:])

	if closeErr := a.close(ctx); closeErr != nil {
		a.logger.Warn("shutdown incomplete", "error", closeErr.Error())
	}

	return fail(stderr, err)
}

// fail reports err on stderr and maps it to an exit code. A nil err yields exitOK.
func fail(stderr io.Writer, err error) int {
	if err == nil {
		return exitOK
	}

	_, _ = fmt.Fprintf(stderr, "librarian: %s\n", flattenError(err))

	return exitCodeFor(err)
}
