package main

import (
	"github.com/tmorey/clubdesk/internal/cli"
)

func main() {
	cli.Execute()
}
