// Command spinplex renders concurrent terminal spinners and progress bars.
package main

import (
	"os"

	"spinplex/internal/cli"
	"spinplex/internal/signal"
)

func main() {
	if err := signal.RunWithContext(cli.Execute); err != nil {
		os.Exit(1)
	}
}
