package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/hostbridge/bridge"
	"github.com/wippyai/hostbridge/internal/xlog"
	"github.com/wippyai/hostbridge/wasmhost"
)

func main() {
	var (
		formatStr   = flag.String("format", "", "Format string to render")
		argsStr     = flag.String("args", "", "Format arguments (comma-separated; ints, floats, true/false, null or strings)")
		wasmFile    = flag.String("wasm", "", "Path to a core wasm module importing xjni")
		funcName    = flag.String("func", "run", "Function to call in the wasm module")
		stress      = flag.Bool("stress", false, "Run the concurrent exception stress test")
		threads     = flag.Int("threads", 8, "Stress test goroutines")
		iterations  = flag.Int("iterations", 1000, "Stress test calls per goroutine")
		logLevel    = flag.String("log", "warn", "Log level (debug, info, warn, error)")
		version     = flag.Bool("version", false, "Print the bridge version and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *version {
		fmt.Println(bridge.Version())
		return
	}

	log, err := xlog.New("xjni", *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	bridge.SetLogger(log.Named("bridge"))
	wasmhost.SetLogger(log.Named("host"))

	b, err := bridge.Init()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = bridge.Teardown() }()

	switch {
	case *interactive:
		if !xlog.IsTerminal() {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		err = runInteractive(b)
	case *stress:
		err = runStress(b, log, *threads, *iterations)
	case *wasmFile != "":
		err = runWasm(b, *wasmFile, *funcName)
	case *formatStr != "":
		err = runFormat(b, *formatStr, parseArgs(*argsStr))
	default:
		fmt.Fprintln(os.Stderr, "Usage: xjni -format <fmt> [-args a,b,c]")
		fmt.Fprintln(os.Stderr, "       xjni -wasm <module.wasm> [-func name]")
		fmt.Fprintln(os.Stderr, "       xjni -stress [-threads n] [-iterations n]")
		fmt.Fprintln(os.Stderr, "       xjni -i  (interactive mode)")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseArgs converts comma-separated command line values to format
// arguments: integers, floats, booleans, null, and strings otherwise.
func parseArgs(s string) []any {
	if s == "" {
		return nil
	}
	var args []any
	for _, field := range strings.Split(s, ",") {
		args = append(args, parseArg(field))
	}
	return args
}

func parseArg(s string) any {
	if v, err := strconv.ParseInt(s, 10, 32); err == nil {
		return int32(v)
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	return s
}

func renderFormat(b *bridge.Bridge, format string, args []any) (string, error) {
	return bridge.Invoke(b, bridge.Signature{Name: "format"}, func(env *bridge.Env) string {
		return env.Sprintf(format, args...)
	}).Get()
}

func runFormat(b *bridge.Bridge, format string, args []any) error {
	s, err := renderFormat(b, format, args)
	if err != nil {
		return err
	}
	fmt.Println(s)
	return nil
}

func runStress(b *bridge.Bridge, log *zap.Logger, threads, iterations int) error {
	kinds := []bridge.Kind{bridge.KindIO, bridge.KindMalformedText, bridge.KindResourceNotFound, bridge.KindUnsupportedEncoding}
	sig := bridge.Signature{Name: "stress", Throws: kinds}

	fmt.Printf("Stress: %d goroutines x %d calls\n", threads, iterations)
	start := time.Now()

	var g errgroup.Group
	for w := 0; w < threads; w++ {
		g.Go(func() error {
			for i := 0; i < iterations; i++ {
				kind := kinds[(w+i)%len(kinds)]
				msg := fmt.Sprintf("w%d-%d", w, i)
				ex := bridge.Run(b, sig, func(env *bridge.Env) {
					sb := env.NewStringBuilderString(msg)
					defer env.DeleteRef(sb)
					env.Throwf(kind, "%s", env.ToString(sb))
				})
				if ex == nil || ex.Kind != kind || ex.Message != msg {
					return fmt.Errorf("goroutine %d call %d: raised %v, want %s %q", w, i, ex, kind, msg)
				}
			}
			log.Debug("stress goroutine done", zap.Int("goroutine", w))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	stats := b.Stats()
	fmt.Printf("Calls: %d, raised: %d, live handles: %d, elapsed: %s\n",
		stats.Calls, stats.Raised, stats.Live, time.Since(start).Round(time.Millisecond))
	if stats.Live != 0 {
		return fmt.Errorf("%d handles leaked", stats.Live)
	}
	return nil
}

func runWasm(b *bridge.Bridge, wasmFile, funcName string) error {
	ctx := context.Background()

	data, err := os.ReadFile(wasmFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	host := wasmhost.New(b, wasmhost.DefaultOptions())
	if _, err := host.Instantiate(ctx, rt); err != nil {
		return fmt.Errorf("register host: %w", err)
	}

	mod, err := rt.Instantiate(ctx, data)
	if err != nil {
		return fmt.Errorf("instantiate: %w", err)
	}
	defer host.Forget(mod)
	defer mod.Close(ctx)

	fn := mod.ExportedFunction(funcName)
	if fn == nil {
		return fmt.Errorf("module does not export %s", funcName)
	}

	fmt.Printf("Calling %s()...\n", funcName)
	results, err := fn.Call(ctx)
	if err != nil {
		return fmt.Errorf("call %s: %w", funcName, err)
	}
	fmt.Printf("Result: %v\n", results)

	if ex := host.Env(mod).ExceptionOccurred(); ex != nil {
		return fmt.Errorf("guest left an exception pending: %w", ex)
	}
	return nil
}
