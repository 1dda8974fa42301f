package main

import (
	"os"

	"github.com/FourteenBrush/grumm-bootstrap/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
