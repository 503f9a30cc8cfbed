// PicoTrigger - keyword-trigger gateway for chat platforms
// License: MIT
//
// Copyright (c) 2026 PicoTrigger contributors

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tinyland-inc/picotrigger/cmd/picotrigger/internal"
	"github.com/tinyland-inc/picotrigger/cmd/picotrigger/internal/gateway"
	"github.com/tinyland-inc/picotrigger/cmd/picotrigger/internal/onboard"
	"github.com/tinyland-inc/picotrigger/cmd/picotrigger/internal/version"
)

func NewPicotriggerCommand() *cobra.Command {
	short := fmt.Sprintf("%s picotrigger - Keyword Trigger Gateway v%s\n\n", internal.Logo, internal.GetVersion())

	cmd := &cobra.Command{
		Use:     "picotrigger",
		Short:   short,
		Example: "picotrigger gateway",
	}

	cmd.AddCommand(
		onboard.NewOnboardCommand(),
		gateway.NewGatewayCommand(),
		version.NewVersionCommand(),
	)

	return cmd
}

func main() {
	cmd := NewPicotriggerCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
