package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/optikforge/zmxlink/internal/config"
	"github.com/optikforge/zmxlink/zmx"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitHostErr  = 1
	ExitUsageErr = 2
	ExitInternal = 3
)

// Run is the main CLI entry point. Returns an exit code.
func Run(args []string) int {
	opts, rest, err := parseRootFlags(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "zmxlink: %v\n", err)
		return ExitUsageErr
	}
	if opts.help || len(rest) == 0 {
		printHelp(os.Stdout)
		return ExitOK
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "zmxlink: %v\n", err)
		return ExitInternal
	}
	if verr := config.Validate(cfg); verr != nil {
		fmt.Fprintf(os.Stderr, "zmxlink: invalid config: %v\n", verr)
		return ExitUsageErr
	}
	opts.applyConfig(cfg)

	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "zmxlink: unknown command: %s\n", rest[0])
		printHelp(os.Stderr)
		return ExitUsageErr
	}
	return cmd.run(opts, cfg, rest[1:])
}

type command struct {
	summary string
	run     func(opts *rootOptions, cfg *config.Config, args []string) int
}

var commands = map[string]command{
	"version":  {"print the host application version", runVersion},
	"info":     {"show system settings and aperture", runInfo},
	"surfaces": {"list the surfaces of the current model", runSurfaces},
	"push":     {"copy the model into the host editor", runPush},
	"save":     {"save the model to a lens file", runSave},
	"load":     {"load a lens file or configured lens name", runLoad},
	"singlet":  {"replace the model with a demo singlet", runSinglet},
	"report":   {"fetch an analysis text report", runReport},
}

// connect dials the host with the effective options and returns a ready
// connection.
func (o *rootOptions) connect() (*zmx.Conn, error) {
	t, err := zmx.DialTransport(o.network, o.address)
	if err != nil {
		return nil, err
	}
	connOpts := []zmx.Option{zmx.WithTimeout(o.timeout)}
	if o.debug {
		connOpts = append(connOpts, zmx.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	}
	return zmx.NewConn(t, connOpts...), nil
}

// hostErr prints a host-side failure and picks the exit code for it.
func hostErr(err error) int {
	fmt.Fprintf(os.Stderr, "zmxlink: %v\n", err)
	return ExitHostErr
}
