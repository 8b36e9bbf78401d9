package main

import (
	"sparkle-booking/core/logger"
	"sparkle-booking/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
	}
}
