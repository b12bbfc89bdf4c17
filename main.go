package main

import (
	"os"

	"github.com/kiri-osint/CS2-Info-Hub-Bot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
