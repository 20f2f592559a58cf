package config

import (
	"flag"
	"fmt"
)

const HelpMessage = `
Classroom attendance with browser geolocation.

Usage:
  attendance --mode=attendance-service [--config-path=config.yaml]
  attendance --help

Options:
  --mode         Service to run. Supported: attendance-service
  --config-path  Path to the config yaml file (default: config.yaml)
  --help         Show this screen

Every value can be overridden with environment variables, e.g.
DATABASE_HOST, RABBITMQ_ENABLED, HTTP_PORT, ADMIN_PASSWORD, TICKET_SECRET, LOG_LEVEL.
`

func PrintHelp() {
	if HelpMessage != "" {
		fmt.Printf("%s", HelpMessage)
	} else {
		flag.Usage()
	}
}
