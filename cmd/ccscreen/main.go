package main

import (
	"fmt"
	"os"

	"ccscreen/internal/cli"
	"ccscreen/internal/config"
	"ccscreen/internal/logging"
)

func main() {
	configDir := configDirFromArgs(os.Args[1:])

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLoggerWithConfig(logging.LogConfig{
		Level:      cfg.Log.Level,
		Console:    cfg.Log.Console,
		File:       cfg.Log.File,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    20,
		MaxBackups: 5,
		MaxAge:     30,
	})

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configDirFromArgs peeks at --config before cobra parses flags, since
// the config has to be loaded to build the command tree.
func configDirFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if len(arg) > len("--config=") && arg[:len("--config=")] == "--config=" {
			return arg[len("--config="):]
		}
	}
	return ""
}
