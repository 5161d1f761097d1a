package main

import (
	"os"

	dloenv "github.com/0xa1bed0/dloenv/internal/cli/dloenv"
	"github.com/0xa1bed0/dloenv/internal/logs"
)

func main() {
	err := dloenv.Execute()

	if err != nil {
		logs.Errorf("%v", err)
	}
	if closeErr := logs.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		os.Exit(1)
	}
}
