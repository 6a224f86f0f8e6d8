package main

import (
	"log"
	"os"

	mockapi "github.com/classpoint/classpoint/apps/mockapi/echo"
	"github.com/classpoint/classpoint/core"
	logsvc "github.com/classpoint/classpoint/services/logger"
)

func main() {
	conf := core.NewConfig()
	validate, translator := core.NewValidator()

	std := log.New(os.Stdout, "MOCKAPI : ", log.LstdFlags|log.Lmicroseconds)
	var logger core.Logger
	if conf.RollbarToken != "" {
		logger = logsvc.NewRollbarLogger(std, conf)
	} else {
		logger = logsvc.NewConsoleLogger(std)
	}

	app := mockapi.NewServer(
		&mockapi.Options{
			Address:    ":8000",
			Conf:       conf,
			Logger:     logger,
			Validate:   validate,
			Translator: translator,
		},
	)
	app.Start()
}
