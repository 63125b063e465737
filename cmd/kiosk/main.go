package main

import (
	"context"

	"github.com/spec-kit/warden-register/internal/kiosk/cli"
	"github.com/spec-kit/warden-register/internal/kiosk/config"
)

func main() {
	cfg := config.Load()
	app := cli.NewApp(cfg)
	app.Run(context.Background())
}
