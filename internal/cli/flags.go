package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/optikforge/zmxlink/internal/config"
)

type rootOptions struct {
	network string
	address string
	timeout time.Duration
	debug   bool
	help    bool

	// track which options came from flags so config values don't override
	netSet, addrSet, timeoutSet, debugSet bool
}

// parseRootFlags splits the global flags off the front of the argument
// list. Flags after the command name belong to the command.
func parseRootFlags(args []string) (*rootOptions, []string, error) {
	opts := &rootOptions{
		network: config.DefaultNetwork,
		address: config.DefaultAddress,
		timeout: config.DefaultTimeout,
	}
	i := 0
	for ; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			break
		}
		switch {
		case arg == "-h" || arg == "--help":
			opts.help = true
		case arg == "--debug":
			opts.debug = true
			opts.debugSet = true
		case strings.HasPrefix(arg, "--network="):
			opts.network = strings.TrimPrefix(arg, "--network=")
			opts.netSet = true
		case strings.HasPrefix(arg, "--address="):
			opts.address = strings.TrimPrefix(arg, "--address=")
			opts.addrSet = true
		case strings.HasPrefix(arg, "--timeout="):
			d, err := time.ParseDuration(strings.TrimPrefix(arg, "--timeout="))
			if err != nil {
				return nil, nil, fmt.Errorf("invalid --timeout: %w", err)
			}
			opts.timeout = d
			opts.timeoutSet = true
		default:
			return nil, nil, fmt.Errorf("unknown flag: %s", arg)
		}
	}
	return opts, args[i:], nil
}

// applyConfig fills options the flags left untouched from the config file.
func (o *rootOptions) applyConfig(cfg *config.Config) {
	if !o.netSet {
		o.network = cfg.Host.NetworkOrDefault()
	}
	if !o.addrSet {
		o.address = cfg.Host.AddressOrDefault()
	}
	if !o.timeoutSet {
		o.timeout = cfg.Host.TimeoutOrDefault()
	}
	if !o.debugSet {
		o.debug = cfg.Debug
	}
}

func printHelp(w io.Writer) {
	fmt.Fprintf(w, "Usage: zmxlink [flags] <command> [args]\n\nCommands:\n")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-10s %s\n", name, commands[name].summary)
	}
	fmt.Fprintf(w, `
Flags:
  --network=tcp|unix   host socket family
  --address=ADDR       host socket address
  --timeout=DURATION   per-command response timeout
  --debug              log protocol traffic to stderr
  -h, --help           show this help

Config file: %s
`, config.ExampleConfigPath())
}
