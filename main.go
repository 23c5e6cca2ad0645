package main

import (
	"errors"
	"os"
)

func main() {
	if err := configureCliCommands().Execute(); err != nil {
		NewLogger().Error("%v", err)

		var uerr *usageError
		if errors.As(err, &uerr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
