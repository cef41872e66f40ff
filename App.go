package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

const ExitCodeMainError = 1

const ListenPort = ":8080"

func RunApp() error {
	gin.SetMode(gin.ReleaseMode)

	container := BuildServiceContainer()

	container.WebhookDispatcher.Start()
	defer container.WebhookDispatcher.Close()

	address := os.Getenv("LISTEN_ADDR")
	if address == "" {
		address = ListenPort
	}

	return http.ListenAndServe(address, container.Router)
}

func HandleExitError(errStream io.Writer, err error) int {
	if err != nil {
		_, _ = fmt.Fprintln(errStream, err)
	}

	if err != nil {
		return ExitCodeMainError
	}

	return 0
}
