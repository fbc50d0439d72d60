package main

import (
	"flag"
	"fmt"
	"garage/internal/di"
	"garage/internal/structures"
	"os"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "configs/config.yaml", "path to the YAML config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "mirror logs to the console")
	flag.Parse()

	_, cleanup, err := di.InitApp(flags)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "garage: %s\n", err)
		os.Exit(1)
	}
}
