package main

import (
	"github.com/pugroyal/pugroyal-go/internal/cli"
)

func main() {
	cli.Execute()
}
