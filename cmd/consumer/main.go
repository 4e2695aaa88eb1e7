package main

import (
	"errors"
	"io/fs"
	stdLog "log"

	"github.com/joho/godotenv"

	"github.com/Astemirdum/kafka-avro/consumer/app"
	"github.com/Astemirdum/kafka-avro/consumer/config"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		stdLog.Fatal("load envs from .env ", err)
	}

	app.Run(config.NewConfig())
}
