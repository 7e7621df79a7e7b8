package main

import (
	"fmt"
	"os"

	"github.com/ZaidRasheed/backend-admin-panel/cmd/adminpanel/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
