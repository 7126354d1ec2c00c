package main

import (
	"flag"
	"io"
	"os"
)

// cliOptions 為命令列參數
type cliOptions struct {
	ConfigPath  string
	MigrateDown bool
}

// parseFlags 解析命令列參數，-config 預設取自 CONFIG_FILE
func parseFlags(args []string) (*cliOptions, error) {
	opts := &cliOptions{}
	fs := flag.NewFlagSet("hello-web", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.ConfigPath, "config", os.Getenv("CONFIG_FILE"),
		"Path to YAML configuration file (env: CONFIG_FILE)")
	fs.BoolVar(&opts.MigrateDown, "migrate-down", false,
		"Roll back every access log migration and exit (requires DATABASE_URL)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}
