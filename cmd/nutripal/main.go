package main

import (
	// zone data for the badge route's ?tz= parameter on hosts without it
	_ "time/tzdata"

	"github.com/pageza/nutripal/backend/internal/cli"
)

func main() {
	cli.Execute()
}
