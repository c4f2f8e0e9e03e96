package main

import (
	"github.com/WilliamSWoodruff/doggo-cli/cmd"
)

func main() {
	cmd.Execute()
}
