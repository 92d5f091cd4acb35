package main

import (
	"os"

	"github.com/jcant0n/improvecomments/internal/cli"
)

func main() {
	code, _ := cli.Run(os.Args, nil)
	os.Exit(code)
}
