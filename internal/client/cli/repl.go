package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	loggedIn() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	TopUp(ctx context.Context) error
	Files(ctx context.Context, paths []string) error
	Drop(ctx context.Context, args []string) error
	Show(ctx context.Context) error
	Set(ctx context.Context, field, value string) error
	Stamp(ctx context.Context) error
	Status(ctx context.Context) error
	History(ctx context.Context) error
}

// runREPL reads a line, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on reader EOF or when the
// user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers surface
// their own failures as notices. This keeps the loop resilient and focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "stampctl (%s)> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.loggedIn() {
				fmt.Fprintln(out, "Available commands: files <path…>, drop [dir], show, date|start|end|crop <value>, stamp, status, history, topup, logout, exit")
			} else {
				fmt.Fprintln(out, "Available commands: signup, login, status, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "signup":
			_ = a.Signup(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "topup":
			_ = a.TopUp(ctx)

		case "files":
			if len(args) == 0 {
				fmt.Fprintln(out, "Usage: files <path> [path…]")
				continue
			}
			_ = a.Files(ctx, args)

		case "drop":
			_ = a.Drop(ctx, args)

		case "show":
			_ = a.Show(ctx)

		case "date", "start", "end", "crop":
			if len(args) == 0 {
				fmt.Fprintf(out, "Usage: %s <value>\n", cmd)
				continue
			}
			_ = a.Set(ctx, cmd, strings.Join(args, " "))

		case "stamp":
			_ = a.Stamp(ctx)

		case "status":
			_ = a.Status(ctx)

		case "history":
			_ = a.History(ctx)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
	}
}
