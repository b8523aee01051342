package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/gompdf/gridpdf/internal/cli"
)

var version = "dev"

func main() {
	root := cli.New(os.Stdout, os.Stderr).RootCommand()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
