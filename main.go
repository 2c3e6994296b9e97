package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ElrondNetwork/bounty-market-gateway/adapter"
	"github.com/ElrondNetwork/bounty-market-gateway/config"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/urfave/cli"
)

var log = logger.GetOrCreate("main")

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to the toml configuration file",
		Value: config.DefaultConfigPath,
	}
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Usage: "logger level, e.g. *:INFO or *:DEBUG,market:TRACE",
		Value: "*:INFO",
	}
	portFlag = cli.StringFlag{
		Name:  "port",
		Usage: "overrides Server.Port from the configuration file",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "bounty-market-gateway"
	app.Usage = "serves a bounty market contract over HTTP"
	app.Flags = []cli.Flag{configFlag, logLevelFlag, portFlag}
	app.Action = serve
	app.Commands = []cli.Command{
		{
			Name:   "serve",
			Usage:  "run the web server",
			Action: serve,
		},
		{
			Name:   "snapshot",
			Usage:  "refresh once and print the rendered market as json",
			Action: snapshot,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Error("gateway stopped", "err", err.Error())
		os.Exit(1)
	}
}

func loadConfig(ctx *cli.Context) (config.GeneralConfig, error) {
	if err := logger.SetLogLevel(ctx.GlobalString(logLevelFlag.Name)); err != nil {
		return config.GeneralConfig{}, err
	}

	cfg, err := config.LoadConfig(ctx.GlobalString(configFlag.Name))
	if err != nil {
		return config.GeneralConfig{}, err
	}
	if port := ctx.GlobalString(portFlag.Name); port != "" {
		cfg.Server.Port = port
	}
	return cfg, nil
}

func serve(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	adapterFacade, err := adapter.NewAdapter(cfg)
	if err != nil {
		return err
	}
	adapterFacade.Warmup(context.Background())

	webServer, err := adapter.NewWebServer(adapterFacade)
	if err != nil {
		return err
	}

	log.Info("starting web server", "port", cfg.Server.Port)
	return webServer.Run(cfg.Server.Port)
}

func snapshot(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	adapterFacade, err := adapter.NewAdapter(cfg)
	if err != nil {
		return err
	}

	res := adapterFacade.Refresh(context.Background())
	if res.Err != nil {
		return res.Err
	}

	out, err := json.MarshalIndent(adapterFacade.Snapshot(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
