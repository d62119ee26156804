package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
)

type configCommand struct {
	*app
}

func (c *configCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"show"}
	}
	rest := args[1:]

	var err error
	switch args[0] {
	case "show":
	case "name":
		if len(rest) == 0 {
			return fmt.Errorf("usage: config name NAME")
		}
		err = c.users.UpdateName(ctx, strings.Join(rest, " "))
	case "schedule":
		err = c.schedule(ctx, rest)
	case "goal":
		if len(rest) != 1 {
			return fmt.Errorf("usage: config goal AMOUNT")
		}
		goal, perr := parseAmount(rest[0])
		if perr != nil {
			return perr
		}
		err = c.users.UpdateMoneyGoal(ctx, goal)
	case "visited":
		err = c.users.MarkVisited(ctx)
	case "reset":
		err = c.users.ResetFirstVisit(ctx)
	default:
		return fmt.Errorf("config: unknown action %q", args[0])
	}
	if err != nil {
		return err
	}

	cfg, err := c.users.Get(ctx)
	if err != nil {
		return err
	}
	return c.printer.UserConfig(cfg)
}

func (c *configCommand) schedule(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: config schedule OPEN CLOSE (HH:MM HH:MM)")
	}
	openHour, openMinute, err := parseClockArg(args[0])
	if err != nil {
		return err
	}
	closeHour, closeMinute, err := parseClockArg(args[1])
	if err != nil {
		return err
	}
	schedule, err := entities.NewSchedule(openHour, openMinute, closeHour, closeMinute)
	if err != nil {
		return err
	}
	return c.users.UpdateSchedule(ctx, schedule)
}

type initCommand struct {
	*app
}

// Execute prepares the shop for the day: the owner row exists and an open
// session for today is in place, rolling yesterday's over when needed.
func (c *initCommand) Execute(ctx context.Context, args []string) error {
	fs := c.newFlagSet("init")
	name := fs.String("name", entities.DefaultUserName, "owner name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.users.Init(ctx, *name)
	if err != nil {
		return err
	}
	session, err := c.sessions.EnsureSession(ctx, c.now())
	if err != nil {
		return err
	}
	greeting, err := c.users.Greeting(ctx)
	if err != nil {
		return err
	}

	c.printer.Message("%s 👋", greeting)
	if cfg.IsFirstTime {
		c.printer.Message("First run: set your schedule with 'config schedule' and a daily goal with 'config goal'.")
	}
	return c.printer.Session(session)
}
