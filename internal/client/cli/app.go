package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/auxillary/internal/client/client"
)

var ErrUnknownCommand = errors.New("unknown command")

const usage = `Usage: client [-a host:port] [-t seconds] [-c config.json] <command>

Commands:
  register   create a new account
  login      log in and print the issued tokens`

type App struct {
	client client.Client
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c client.Client, in io.Reader, out io.Writer) *App {
	return &App{client: c, reader: bufio.NewReader(in), out: out}
}

// Run executes the command named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, usage)
		return ErrUnknownCommand
	}

	switch args[0] {
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "help", "-h", "--help":
		fmt.Fprintln(a.out, usage)
		return nil
	default:
		fmt.Fprintln(a.out, usage)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
}

// describe turns a client error into the line shown to the user.
func describe(err error) string {
	var se *client.ServerError
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return "Server is unavailable, try again later"
	case errors.As(err, &se):
		return se.Message
	default:
		return err.Error()
	}
}
