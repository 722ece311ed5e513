// Command millerindex builds a symmetry-aware lookup over a list of Miller
// indices and answers find and neighbour queries against it.
//
//	millerindex --input hkl.txt.zst --config p4.yaml area --min 1 --max 2 --cap 32
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
