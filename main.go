package main

import (
	"fmt"
	"os"

	"github.com/oakwood-commons/imgx/cmd"
	"github.com/oakwood-commons/imgx/pkg/logger"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	logger.Sync()
	if code := cmd.ExitCode(err); code != 0 {
		os.Exit(code)
	}
}
