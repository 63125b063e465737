package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spec-kit/warden-register/internal/api/dto"
	"github.com/spec-kit/warden-register/internal/kiosk/client"
	"github.com/spec-kit/warden-register/internal/kiosk/config"
)

// App drives the kiosk's interactive flows. The active session record lives
// only in this struct; closing the program forgets who was "logged in",
// while their check-in row remains on the server.
type App struct {
	api           client.RegisterAPI
	reader        *bufio.Reader
	out           io.Writer
	session       *dto.WardenResponse
	adminPassword string
}

// NewApp wires the kiosk against the configured API endpoint.
func NewApp(cfg *config.Config) *App {
	return &App{
		api:           client.New(cfg.APIBase),
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
		adminPassword: cfg.AdminPassword,
	}
}

// Run shows the home menu until the user quits.
func (a *App) Run(ctx context.Context) {
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Fire Warden System")
		fmt.Fprintln(a.out, "  [1] Check in")
		fmt.Fprintln(a.out, "  [2] Admin")
		fmt.Fprintln(a.out, "  [q] Quit")

		choice, err := promptLine(a.reader, "Select an option", a.out)
		if err != nil {
			return
		}

		switch choice {
		case "1":
			_ = a.CheckIn(ctx)
		case "2":
			_ = a.Admin(ctx)
		case "q", "quit", "exit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown option:", choice)
		}
	}
}

func (a *App) hasSession() bool {
	return a.session != nil
}
