package main

import (
	"context"
	"log"
	"os"

	"github.com/contentmod/portal/internal/buildinfo"
	"github.com/contentmod/portal/internal/client/cli"
	"github.com/contentmod/portal/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
