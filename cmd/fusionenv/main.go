package main

import (
	"github.com/insanefusion/fusionenv/pkg/cli"
	"github.com/insanefusion/fusionenv/pkg/util/console"
)

func main() {
	cmd, err := cli.NewRootCommand()
	if err != nil {
		console.Fatalf("%s", err)
	}

	if err = cmd.Execute(); err != nil {
		console.Fatalf("%s", err)
	}
}
