package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const replHelp = `commands:
  list                show the records and the draft
  reload              fetch the records again
  set <field> <text>  fill one draft field (name, email or phone)
  edit <id>           copy a record into the draft for updating
  new                 clear the draft and go back to create mode
  cancel              abandon the edit in progress
  submit              send the draft (create, or update when editing)
  del <id>            delete a record
  theme               switch between dark and light
  help                show this list
  quit                leave`

// Run drives an interactive session: it loads the collection once,
// then reads commands from in until quit or EOF.  Remote failures are
// printed and the loop keeps going, so a dead collaborator never
// kills the session.
func Run(ctx context.Context, c *Controller, in io.Reader, out io.Writer) error {
	if err := c.Load(ctx); err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
	}
	c.Render(out)

	scanner := bufio.NewScanner(in)
	prompt(c, out)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			prompt(c, out)
			continue
		}
		if quit := dispatch(ctx, c, out, line); quit {
			return nil
		}
		prompt(c, out)
	}
	return scanner.Err()
}

// dispatch runs one command line and reports whether the session is
// over.
func dispatch(ctx context.Context, c *Controller, out io.Writer, line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		fmt.Fprintln(out, "bye")
		return true

	case "help", "?":
		fmt.Fprintln(out, replHelp)

	case "list", "ls":
		c.Render(out)

	case "reload":
		if err := c.Load(ctx); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			break
		}
		c.Render(out)

	case "set":
		if len(args) < 2 {
			fmt.Fprintln(out, "usage: set <field> <text>")
			break
		}
		value := strings.Join(args[1:], " ")
		if err := c.SetField(args[0], value); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			break
		}
		c.Render(out)

	case "edit":
		id, ok := parseID(out, args)
		if !ok {
			break
		}
		if err := c.BeginEdit(id); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			break
		}
		c.Render(out)

	case "new", "cancel":
		c.CancelEdit()
		c.Render(out)

	case "submit":
		if err := c.Submit(ctx); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			break
		}
		c.Render(out)

	case "del", "delete":
		id, ok := parseID(out, args)
		if !ok {
			break
		}
		if err := c.Delete(ctx, id); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			break
		}
		c.Render(out)

	case "theme":
		c.ToggleTheme()
		c.Render(out)

	default:
		fmt.Fprintf(out, "unknown command %q (try \"help\")\n", cmd)
	}
	return false
}

func parseID(out io.Writer, args []string) (int, bool) {
	if len(args) != 1 {
		fmt.Fprintln(out, "usage: <command> <id>")
		return 0, false
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(out, "error: %q is not a record id\n", args[0])
		return 0, false
	}
	return id, true
}

func prompt(c *Controller, out io.Writer) {
	c.Theme().Prompt.Fprint(out, "userdesk> ")
}
