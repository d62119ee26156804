package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

type subcommand interface {
	Execute(ctx context.Context, args []string) error
}

// RootCommand dispatches to the command groups
type RootCommand struct {
	config Config
}

// NewRootCommand creates the top level command with the given configuration
func NewRootCommand(config Config) *RootCommand {
	return &RootCommand{config: config}
}

// Execute runs the command named by args[0]
func (c *RootCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		c.showHelp()
		return nil
	}

	a, err := newApp(c.config)
	if err != nil {
		return err
	}

	groups := map[string]subcommand{
		"init":     &initCommand{a},
		"product":  &productCommand{a},
		"session":  &sessionCommand{a},
		"movement": &movementCommand{a},
		"sale":     &saleCommand{a},
		"history":  &historyCommand{a},
		"calendar": &calendarCommand{a},
		"config":   &configCommand{a},
		"summary":  &summaryCommand{a},
	}

	cmd, ok := groups[args[0]]
	if !ok {
		names := make([]string, 0, len(groups))
		for name := range groups {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Errorf("unknown command %q (available: %s)", args[0], strings.Join(names, ", "))
	}
	return cmd.Execute(ctx, args[1:])
}

func (c *RootCommand) showHelp() {
	fmt.Fprint(c.config.Out, `stokea - point of sale for small shops

Usage:
  stokea [flags] <command> [arguments]

Commands:
  init [-name NAME]                      create the owner config and open today's session
  summary                                dashboard with session, stock and today's sales
  product add|update|delete|get|list|low|stock|import|export
  session open|close|close-all|ensure|new|current|list|adjust
  movement in|out AMOUNT [DESCRIPTION] | list [-session ID]
  sale checkout CODE[:QTY]... | list [-session ID] | items ID
  history [-q TEXT] [-type ALL|IN|OUT|SALE] [-min N] [-max N] [-from DATE] [-to DATE]
  calendar [-year YYYY] [-month MM]
  config show|name|schedule|goal|visited|reset

Flags:
  -db PATH        SQLite database file (overrides STOKEA_DB_PATH)
  -driver NAME    sqlite, mysql or memory (overrides STOKEA_DB_DRIVER)
  -format FORMAT  text or json
  -verbose        log domain events
`)
}
