package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/auxillary/internal/client/cli"
	"github.com/dmitrijs2005/auxillary/internal/client/client"
	"github.com/dmitrijs2005/auxillary/internal/client/config"
)

func main() {

	cfg, args, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	c, err := client.NewGRPCClient(cfg.ServerEndpointAddr, cfg.RequestTimeout)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer c.Close()

	app := cli.NewApp(c, os.Stdin, os.Stdout)
	if err := app.Run(context.Background(), args); err != nil {
		c.Close()
		os.Exit(1)
	}

}
