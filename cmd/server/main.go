/*
main.go - Application entry point

PURPOSE:
  Command-line entry point of the production back office. One binary serves
  the HTTP API and answers the same engine queries from the terminal.

COMMANDS:
  serve                         Start the HTTP API and the compliance monitor
  seed --file data.yaml         Load a YAML dataset (or --scenario <id>)
  availability <resource>       Availability of one inventory item
      --start --end [--exclude] [--quantity]
  rest <member> [--year --month]
                                Monthly rest compliance of one crew member

GLOBAL FLAGS:
  --config   YAML config file (default: built-in defaults)
  --db       SQLite database path, overrides database.path
             Use ":memory:" for an in-memory database
  --format   Output format for queries: text | json

GRACEFUL SHUTDOWN (serve):
  On SIGINT/SIGTERM:
  1. Stop the compliance monitor
  2. Stop accepting new connections
  3. Wait for active requests to complete (server.shutdown_timeout)
  4. Close database connection

EXAMPLES:
  ./server serve --config config.yaml
  ./server seed --scenario festival-season --db ./data/production.db
  ./server availability sm58 --start 2024-06-01 --end 2024-06-03
  ./server rest crew-marco --year 2024 --month 6 --format json

SEE ALSO:
  - config/config.go: Configuration file
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
