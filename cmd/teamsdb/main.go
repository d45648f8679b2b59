package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/clearway/teamsdb/internal/cli"
)

func main() {
	setupLogging(os.Getenv("TEAMSDB_LOG_LEVEL"))

	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "teamsdb: %s\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
