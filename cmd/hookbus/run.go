package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/dshills/hookbus/internal/report"
)

// errDispatchFailed is returned after the report of a failed dispatch has
// been printed.
var errDispatchFailed = errors.New("dispatch failed")

type runOptions struct {
	*rootOptions

	event string
	args  []string
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "run [scripts...]",
		Short: "Load scripts and dispatch one event",
		Long: `Load the configured scripts and any given on the command line, then
dispatch --event with the --arg values and print the report as JSON.

Arguments that are valid JSON are decoded; anything else is passed as a
string.`,
		Example: `  hookbus run hooks.lua --event order.created --arg '{"id":"o-1"}' --arg 3`,
		RunE:    opts.run,
	}

	cmd.Flags().StringVarP(&opts.event, "event", "e", "", "event to dispatch")
	cmd.Flags().StringArrayVarP(&opts.args, "arg", "a", nil, "argument passed to handlers (repeatable)")
	_ = cmd.MarkFlagRequired("event")

	return cmd
}

func (o *runOptions) run(cmd *cobra.Command, scripts []string) error {
	ctx := cmd.Context()
	s, err := o.openSession(ctx, scripts)
	if err != nil {
		return err
	}
	defer s.Close()

	args := make([]any, len(o.args))
	for i, raw := range o.args {
		args[i] = parseArg(raw)
	}

	res, useErr := s.dispatcher.Use(ctx, o.event, args...)
	doc, err := report.JSON(o.event, res, useErr)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	fmt.Fprintln(o.stdout, doc)

	if useErr != nil {
		return fmt.Errorf("%w: %w", errDispatchFailed, useErr)
	}
	return nil
}

// parseArg decodes raw as JSON when it is valid JSON, otherwise returns it
// unchanged.
func parseArg(raw string) any {
	if !gjson.Valid(raw) {
		return raw
	}
	return gjson.Parse(raw).Value()
}
