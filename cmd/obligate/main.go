package main

import (
	"os"

	"obligate/cmd/obligate/cli"
)

func main() {
	os.Exit(int(cli.Run()))
}
