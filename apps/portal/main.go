package main

import (
	"log"
	"os"

	"github.com/classpoint/classpoint/apiclient"
	"github.com/classpoint/classpoint/core"
	"github.com/classpoint/classpoint/core/session"
	logsvc "github.com/classpoint/classpoint/services/logger"
	"github.com/classpoint/classpoint/storage/kv"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "PORTAL : ", log.LstdFlags)

	conf := core.NewConfig()
	validate, translator := core.NewValidator()

	// set up local storage & session
	store, err := kv.OpenFileStore(conf.StoragePath)
	errAndDie(err)
	sessSvc := session.NewService(store, conf, validate, translator)
	if conf.OfflineMode {
		errAndDie(sessSvc.Initialize())
	}

	client := apiclient.NewClient(&apiclient.Options{
		Conf:       conf,
		Session:    sessSvc,
		Logger:     logsvc.NewConsoleLogger(logger),
		Validate:   validate,
		Translator: translator,
	})

	// start CLI
	cli := commandLine{
		client: client,
		sess:   sessSvc,
		out:    os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
