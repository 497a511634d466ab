package main

import (
	"context"
	"embed"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
)

//go:embed all:frontend/public
var assets embed.FS

func runWindow(app *App) error {
	return wails.Run(&options.App{
		Title:  app.Title(),
		Width:  900,
		Height: 680,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 255, G: 255, B: 255, A: 255},
		OnStartup:        app.Startup,
		Bind: []interface{}{
			app,
		},
	})
}

func run(args []string) error {
	cmd := "plot"
	if len(args) > 0 {
		switch args[0] {
		case "plot", "sweep", "board":
			cmd, args = args[0], args[1:]
		case "-h", "-help", "--help", "help":
			fmt.Println(usage)
			return nil
		}
	}

	switch cmd {
	case "sweep", "board":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if cmd == "sweep" {
			return sweepMain(ctx, args)
		}
		return boardMain(ctx, args)
	}
	return plotMain(args)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal("lifeplot: ", err)
	}
}
