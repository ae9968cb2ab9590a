package main

import (
	"github.com/covidslayer/covidslayer-go/internal/cli"
)

func main() {
	cli.Execute()
}
