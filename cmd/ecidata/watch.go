package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/ecidata"
	"github.com/fwojciec/ecidata/collect"
)

// Run executes the watch command.
func (c *WatchCmd) Run(deps *Dependencies) error {
	ref := ecidata.ConstituencyRef{State: c.State, Constituency: c.Constituency}
	if err := ref.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ecidata.ErrorMessage(err))
		return err
	}

	onChange := func(r *ecidata.ConstituencyResult) {
		line := fmt.Sprintf("%s  %s  %s  %s votes",
			time.Now().Format(time.TimeOnly), r.Constituency(), collect.FormatStatus(r), collect.FormatVotes(r.TotalVotes()))
		if leader, ok := r.Leader(); ok {
			line += fmt.Sprintf("  %s (%s) +%s", leader.Candidate, leader.Party, collect.FormatVotes(r.Margin()))
		}
		fmt.Fprintln(deps.Stdout, line)
	}
	onError := func(err error) {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", ecidata.ErrorMessage(err))
	}

	r, err := collect.Watch(deps.Ctx, deps.Results, ref, c.Interval, onChange, onError)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ecidata.ErrorMessage(err))
		return err
	}

	renderResult(deps.Stdout, r)
	return nil
}
