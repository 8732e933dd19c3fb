package main

import "github.com/lswan/logscout/internal/cli"

func main() {
	cli.Execute()
}
