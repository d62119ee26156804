package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
)

type sessionCommand struct {
	*app
}

func (c *sessionCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("session: expected open, close, close-all, ensure, new, current, list or adjust")
	}
	rest := args[1:]
	switch args[0] {
	case "open":
		return c.open(ctx, rest)
	case "close":
		return c.close(ctx, rest)
	case "close-all":
		return c.closeAll(ctx, rest)
	case "ensure":
		session, err := c.sessions.EnsureSession(ctx, c.now())
		if err != nil {
			return err
		}
		return c.printer.Session(session)
	case "new":
		session, err := c.sessions.CreateNewSession(ctx, c.now())
		if err != nil {
			return err
		}
		c.printer.Message("✅ New session opened")
		return c.printer.Session(session)
	case "current":
		session, err := c.sessions.GetOpen(ctx)
		if err != nil {
			return err
		}
		return c.printer.Session(session)
	case "list":
		sessions, err := c.sessions.GetAll(ctx)
		if err != nil {
			return err
		}
		return c.printer.Sessions(sessions)
	case "adjust":
		return c.adjust(ctx, rest)
	default:
		return fmt.Errorf("session: unknown action %q", args[0])
	}
}

func (c *sessionCommand) open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: session open START_AMOUNT")
	}
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}
	session, err := c.sessions.Open(ctx, amount)
	if err != nil {
		return err
	}
	c.printer.Message("✅ Session %d opened", session.ID)
	return c.printer.Session(session)
}

// close takes the counted amount and, optionally, -id; the open session is
// closed when no id is given.
func (c *sessionCommand) close(ctx context.Context, args []string) error {
	fs := c.newFlagSet("session close")
	id := fs.Int64("id", 0, "session id (default: the open session)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: session close [-id ID] AMOUNT")
	}
	amount, err := parseAmount(fs.Arg(0))
	if err != nil {
		return err
	}

	sid := entities.SessionID(*id)
	if sid == 0 {
		open, err := c.sessions.GetOpen(ctx)
		if err != nil {
			return err
		}
		sid = open.ID
	}
	if err := c.sessions.Close(ctx, sid, amount); err != nil {
		return err
	}
	c.printer.Message("🔒 Session %d closed at %s", sid, c.printer.Money().Format(amount))
	return nil
}

func (c *sessionCommand) closeAll(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: session close-all AMOUNT")
	}
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}
	closed, err := c.sessions.CloseAll(ctx, amount)
	if err != nil {
		return err
	}
	c.printer.Message("🔒 %d sessions closed", closed)
	return nil
}

func (c *sessionCommand) adjust(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: session adjust ID DELTA")
	}
	id, err := sessionID(args[0])
	if err != nil {
		return err
	}
	delta, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	if err := c.sessions.UpdateCurrentAmount(ctx, id, delta); err != nil {
		return err
	}
	c.printer.Message("✅ Session %d adjusted by %s", id, c.printer.Money().Format(delta))
	return nil
}

type movementCommand struct {
	*app
}

func (c *movementCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("movement: expected in, out or list")
	}
	switch args[0] {
	case "in", "out":
		return c.record(ctx, args[0], args[1:])
	case "list":
		return c.list(ctx, args[1:])
	default:
		return fmt.Errorf("movement: unknown action %q", args[0])
	}
}

func (c *movementCommand) record(ctx context.Context, kind string, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: movement %s AMOUNT [DESCRIPTION]", kind)
	}
	typ, err := entities.ParseMovementType(kind)
	if err != nil {
		return err
	}
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}

	movement, err := c.movements.Record(ctx, typ, amount, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	c.printer.Message("✅ Movement %d recorded in session %d", movement.ID, movement.SessionID)
	return c.printer.Movements([]*entities.CashMovement{movement})
}

func (c *movementCommand) list(ctx context.Context, args []string) error {
	fs := c.newFlagSet("movement list")
	id := fs.Int64("session", 0, "session id (default: the open session)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sid := entities.SessionID(*id)
	if sid == 0 {
		open, err := c.sessions.GetOpen(ctx)
		if err != nil {
			return err
		}
		sid = open.ID
	}
	movements, err := c.movements.GetBySession(ctx, sid)
	if err != nil {
		return err
	}
	return c.printer.Movements(movements)
}
