package main

import (
	"github.com/c9s/bbands/pkg/cmd"
)

func main() {
	cmd.Execute()
}
