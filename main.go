package main

import (
	"os"

	"github.com/Arsonist406/MassagePlanner/core/logger"
	"github.com/Arsonist406/MassagePlanner/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
		os.Exit(1)
	}
}
