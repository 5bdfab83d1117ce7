package main

import (
	"os"

	"roundtable-api/core/logger"
	"roundtable-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
		os.Exit(1)
	}
}
