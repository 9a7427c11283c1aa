package main

import (
	"os"

	"github.com/warrantydesk/warrantydesk/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
