package cli

import (
	"context"
	"fmt"

	"github.com/autodate/stampctl/internal/client/intake"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) loggedIn() bool {
	return a.session.Authenticated()
}

// Login prompts for credentials and authenticates. Outcome notices and the
// follow-up status refresh are handled by the session service.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	return a.session.Login(ctx, email, string(password))
}

// Signup prompts for credentials and creates an account. No session is
// established; the user logs in afterwards.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	return a.session.Signup(ctx, email, string(password))
}

func (a *App) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

func (a *App) TopUp(ctx context.Context) error {
	return a.session.TopUpDemo(ctx)
}

// Files replaces the selection with the named paths and echoes the summary.
func (a *App) Files(ctx context.Context, paths []string) error {
	refs, err := a.selection.Pick(paths...)
	if err != nil {
		a.notifier.Notify(err.Error(), false)
		return err
	}
	fmt.Fprintln(a.out, intake.Summarize(refs))
	return nil
}

// Drop replaces the selection with the files found in the drop directory
// (the configured one, or the directory named as an argument).
func (a *App) Drop(ctx context.Context, args []string) error {
	dir := a.config.DropDir
	if len(args) > 0 {
		dir = args[0]
	}
	refs, err := a.selection.Drop(dir)
	if err != nil {
		a.notifier.Notify(err.Error(), false)
		return err
	}
	fmt.Fprintln(a.out, intake.Summarize(refs))
	return nil
}

// Show echoes the current selection summary; an empty selection prints an
// empty line.
func (a *App) Show(ctx context.Context) error {
	fmt.Fprintln(a.out, a.selection.Summary())
	return nil
}

// Set updates one stamp parameter. Values are passed through untrimmed; the
// transport trims them at submission time.
func (a *App) Set(ctx context.Context, field, value string) error {
	switch field {
	case "date":
		a.params.Date = value
	case "start":
		a.params.StartTime = value
	case "end":
		a.params.EndTime = value
	case "crop":
		a.params.CropHeight = value
	default:
		return fmt.Errorf("unknown parameter %q", field)
	}
	fmt.Fprintf(a.out, "%s = %s\n", field, value)
	return nil
}

// Stamp submits the current selection with the current parameters. Progress,
// notices, the download and the balance refresh are handled by the stamp
// service.
func (a *App) Stamp(ctx context.Context) error {
	_, err := a.stamp.Submit(ctx, a.selection.Files(), a.params)
	return err
}

// Status forces a refresh and prints the reconciled balance.
func (a *App) Status(ctx context.Context) error {
	a.session.RefreshStatus(ctx)
	credits, price := a.session.CreditsDisplay()
	fmt.Fprintf(a.out, "Credits: %s  Price per job: %s\n", credits, price)
	return nil
}

// History prints the most recent stamp jobs from the local ledger.
func (a *App) History(ctx context.Context) error {
	jobs, err := a.store.Jobs.List(ctx, 20)
	if err != nil {
		a.notifier.Notify(err.Error(), false)
		return err
	}
	if len(jobs) == 0 {
		fmt.Fprintln(a.out, "No jobs yet.")
		return nil
	}
	for _, j := range jobs {
		fmt.Fprintf(a.out, "%s  %-5s  %d file(s)  %s %s–%s crop %s",
			j.SubmittedAt.Local().Format("2006-01-02 15:04:05"),
			j.Outcome, j.FileCount, j.Date, j.StartTime, j.EndTime, j.CropHeight)
		if j.Detail != "" {
			fmt.Fprintf(a.out, "  (%s)", j.Detail)
		}
		fmt.Fprintln(a.out)
	}
	return nil
}
