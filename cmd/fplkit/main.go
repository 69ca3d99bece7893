package main

import (
	"context"

	"fplkit/cmd/fplkit/commands"
	"fplkit/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "fplkit")
	commands.ExecuteContext(context.Background())
}
