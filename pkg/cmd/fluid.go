// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/cppforlife/cobrautil"
	"github.com/spf13/cobra"

	cmdrender "carvel.dev/fluid/pkg/cmd/render"
	"carvel.dev/fluid/pkg/version"
)

type FluidOptions struct{}

func NewDefaultFluidOptions() *FluidOptions {
	return &FluidOptions{}
}

func NewDefaultFluidCmd() *cobra.Command {
	return NewFluidCmd(NewDefaultFluidOptions())
}

func NewFluidCmd(o *FluidOptions) *cobra.Command {
	cmd := cmdrender.NewCmd(cmdrender.NewOptions())

	cmd.Use = "fluid"
	cmd.Aliases = nil
	cmd.Version = version.Version
	cmd.Short = "fluid renders text templates"
	cmd.Long = `fluid renders Liquid-style text templates against YAML, JSON or TOML context data.`

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	// Disable docs header
	cmd.DisableAutoGenTag = true

	cmd.AddCommand(NewVersionCmd(NewVersionOptions()))
	cmd.AddCommand(cmdrender.NewCmd(cmdrender.NewOptions()))

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd,
		cobrautil.DisallowExtraArgs, cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}
