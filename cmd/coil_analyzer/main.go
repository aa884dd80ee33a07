package main

import (
	"embed"

	"github.com/sirupsen/logrus"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/user/coil_analyzer_go/internal/config"
	"github.com/user/coil_analyzer_go/internal/logging"
)

//go:embed all:frontend/public
var assets embed.FS

func main() {
	cfg := config.Load()
	cleanup, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		logrus.Fatalf("Error opening log file %s: %v", cfg.LogFile, err)
	}
	defer cleanup()

	app := NewApp(cfg) // Defined in app.go

	err = wails.Run(&options.App{
		Title:  "Coil Analyzer GO",
		Width:  1100,
		Height: 800,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 46, G: 46, B: 46, A: 255}, // #2e2e2e
		OnStartup:        app.Startup,
		Bind: []interface{}{
			app,
		},
	})

	if err != nil {
		logrus.Fatal("Error running Wails app: ", err.Error())
	}
}
