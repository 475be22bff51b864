package main

import "github.com/fosdem-tools/fosdem-events/internal/cli"

func main() {
	cli.Execute()
}
