// Command trapview runs a WebAssembly guest under a protected call and
// reports traps, or browses a fault backtrace interactively.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/wippyai/trapguard"
	"github.com/wippyai/trapguard/protect"
	"github.com/wippyai/trapguard/sigtrap"
	"github.com/wippyai/trapguard/stackwalk"
)

func main() {
	var (
		wasmFile    = flag.String("wasm", "", "Path to a core wasm module")
		funcName    = flag.String("func", "", "Exported function to call")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive fault browser (demo fault)")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		protect.SetLogger(logger.Named("protect"))
		sigtrap.SetLogger(logger.Named("sigtrap"))
	}

	if *interactive {
		if err := runBrowser(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *wasmFile == "" || *funcName == "" {
		fmt.Fprintln(os.Stderr, "Usage: trapview -wasm <file.wasm> -func <name>")
		fmt.Fprintln(os.Stderr, "       trapview -i  (interactive fault browser)")
		os.Exit(1)
	}

	if err := runGuest(*wasmFile, *funcName); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runGuest(path, export string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	mod, err := r.Instantiate(ctx, data)
	if err != nil {
		return fmt.Errorf("instantiate: %w", err)
	}
	fn := mod.ExportedFunction(export)
	if fn == nil {
		return fmt.Errorf("no exported function %q", export)
	}

	ec := protect.NewContext()

	results, err := protect.Call(ec, func() []uint64 {
		out, callErr := fn.Call(ctx)
		if callErr != nil {
			ec.Throw(callErr)
		}
		return out
	})

	var hostErr *trapguard.HostError
	var unknown *trapguard.UnknownTrap
	switch {
	case errors.As(err, &hostErr):
		fmt.Printf("trapped: %v\n", hostErr.Payload)
	case errors.As(err, &unknown):
		fmt.Printf("trapped: %v\n", unknown)
		stackwalk.WriteReport(os.Stderr, ec.Walk(ec.LastFault()))
	case err != nil:
		return err
	default:
		fmt.Printf("%s() = %v\n", export, results)
	}
	return nil
}
