package main

import (
	"os"

	"github.com/humantouch-dev/humantouch-go/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
