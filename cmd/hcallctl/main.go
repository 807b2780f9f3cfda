package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/danmuck/hcall/internal/channel"
	"github.com/danmuck/hcall/internal/guest"
	"github.com/danmuck/hcall/internal/logging"
	"github.com/danmuck/hcall/internal/observability"
	"github.com/danmuck/hcall/internal/protocol"
)

func main() {
	logging.ConfigureRuntime()
	if err := run(os.Args[1:], os.Stdout); err != nil {
		var toolErr *protocol.ToolError
		if errors.As(err, &toolErr) {
			// Distinct exit code so scripts can tell a tool failure
			// from a broken channel.
			fmt.Fprintf(os.Stderr, "hcallctl: tool failed: %s\n", toolErr.Message)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "hcallctl: %v\n", err)
		os.Exit(1)
	}
}

func run(argv []string, out io.Writer) error {
	fs := flag.NewFlagSet("hcallctl", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to TOML config file")
	devicePath := fs.String("device", "", "host-call device path override")
	argsJSON := fs.String("args-json", "", "tool arguments as one JSON object")
	extract := fs.String("extract", "", "path to pluck from the result document")
	if err := fs.Parse(argv); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) < 1 {
		return errors.New("usage: hcallctl [flags] <tool> [key=value ...]")
	}

	cfg := defaultCLIConfig()
	if *configPath != "" {
		loaded, err := loadCLIConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *devicePath != "" {
		cfg.DevicePath = *devicePath
	}
	if cfg.LogLevel != "" {
		level, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("parse log_level: %w", err)
		}
		zerolog.SetGlobalLevel(level)
	}

	logger := observability.InitLogger("hcallctl")

	args, err := buildArgs(*argsJSON, rest[1:])
	if err != nil {
		return err
	}

	client := guest.New(guest.Config{
		DevicePath: cfg.DevicePath,
		Limits:     channel.Limits{MaxResponseBytes: cfg.MaxResponseBytes},
	}).WithLogger(logger)
	result, err := client.Call(context.Background(), rest[0], args)
	if err != nil {
		return err
	}
	return printResult(out, result, *extract)
}

// buildArgs merges an optional JSON document with key=value pairs; the
// pairs win. Pair values are parsed as JSON scalars with a plain-string
// fallback, so count=3 is a number and name=alice is a string.
func buildArgs(argsJSON string, pairs []string) (map[string]any, error) {
	args := map[string]any{}
	if argsJSON != "" {
		if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
			return nil, fmt.Errorf("parse -args-json: %w", err)
		}
	}
	for _, pair := range pairs {
		key, value, err := splitPair(pair)
		if err != nil {
			return nil, err
		}
		args[key] = parseValue(value)
	}
	return args, nil
}

func splitPair(pair string) (string, string, error) {
	for i := 0; i < len(pair); i++ {
		if pair[i] == '=' {
			if i == 0 {
				break
			}
			return pair[:i], pair[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("argument %q is not key=value", pair)
}

func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

func printResult(out io.Writer, result any, extract string) error {
	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("render result: %w", err)
	}
	if extract != "" {
		value := gjson.GetBytes(body, extract)
		if !value.Exists() {
			return fmt.Errorf("extract path %q not found in result", extract)
		}
		fmt.Fprintln(out, value.Raw)
		return nil
	}
	fmt.Fprintln(out, string(body))
	return nil
}
