package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const defaultPrompt = "Give me three money-making agentic AI micro-SaaS ideas for e-commerce."

func newAskCmd(a *app) *cobra.Command {
	var prompt string

	cmd := &cobra.Command{
		Use:   "ask [prompt]",
		Short: "Send one prompt through the provider router",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer func() { err = errors.Join(err, a.writeMetrics()) }()

			if len(args) > 0 {
				prompt = strings.Join(args, " ")
			}
			text, err := a.router().Route(cmd.Context(), prompt)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, text)
			return nil
		},
	}

	cmd.Flags().StringVar(&prompt, "prompt", defaultPrompt, "prompt to send")
	return cmd
}
