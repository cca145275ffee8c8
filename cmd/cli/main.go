package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/dkazlou/gearhub/internal/buildinfo"
	"github.com/dkazlou/gearhub/internal/client/cli"
	"github.com/dkazlou/gearhub/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	go app.StartOnlineStatusWatcher(ctx, 15*time.Second)

	app.Run(ctx)

}
