// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"carvel.dev/fluid/pkg/parser"
	"carvel.dev/fluid/pkg/stdlib"
	"carvel.dev/fluid/pkg/values"
	"carvel.dev/fluid/pkg/workspace"
)

type RenderOptions struct {
	TemplateFile string
	ContextFile  string
	OutputFile   string
}

func NewOptions() *RenderOptions {
	return &RenderOptions{}
}

func NewCmd(o *RenderOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "render",
		Aliases: []string{"r"},
		Short:   "Render a template against a context data file",
		RunE:    func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVarP(&o.TemplateFile, "file", "f", "", "Template file to render")
	cmd.Flags().StringVar(&o.ContextFile, "context", "", "Context data file (.yaml, .yml, .json or .toml)")
	cmd.Flags().StringVar(&o.OutputFile, "output", "", "Output file (defaults to stdout)")
	return cmd
}

func (o *RenderOptions) Run() error {
	if len(o.TemplateFile) == 0 {
		return fmt.Errorf("Expected template file to be specified (via --file)")
	}

	src, err := os.ReadFile(o.TemplateFile)
	if err != nil {
		return fmt.Errorf("Reading template file: %s", err)
	}

	lang, err := stdlib.DefaultLanguage()
	if err != nil {
		return err
	}

	tpl, err := parser.Compile(src, o.TemplateFile, lang)
	if err != nil {
		return err
	}

	globals := values.NewObject()
	if len(o.ContextFile) > 0 {
		globals, err = workspace.LoadContextFile(o.ContextFile)
		if err != nil {
			return err
		}
	}

	output, err := tpl.Render(globals)
	if err != nil {
		return err
	}

	if len(o.OutputFile) > 0 {
		return os.WriteFile(o.OutputFile, []byte(output), 0600)
	}

	fmt.Print(output)
	return nil
}
