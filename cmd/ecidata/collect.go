package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/ecidata"
	"github.com/fwojciec/ecidata/collect"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Run executes the collect command.
func (c *CollectCmd) Run(deps *Dependencies) error {
	refs := collect.Refs(c.State, c.From, c.To)
	if len(refs) == 0 {
		err := ecidata.Errorf(ecidata.EINVALID, "empty constituency range %d..%d", c.From, c.To)
		fmt.Fprintf(deps.Stderr, "error: %s\n", ecidata.ErrorMessage(err))
		return err
	}

	collector := &collect.Collector{
		Results:     deps.Results,
		Concurrency: c.Concurrency,
		StopOnError: c.StopOnError,
	}

	outcomes, err := collector.Collect(deps.Ctx, refs, func(ev collect.ProgressEvent) {
		if deps.Logger == nil {
			return
		}
		switch ev.Type {
		case collect.ProgressCompleted, collect.ProgressFailed:
			deps.Logger.Info("progress", "ref", ev.Ref.String(), "completed", ev.Completed, "total", ev.Total)
		}
	})

	if c.JSON {
		if werr := writeOutcomesJSON(deps.Stdout, outcomes); werr != nil {
			return werr
		}
	} else {
		renderOutcomes(deps.Stdout, outcomes)
	}

	summary := collect.Summarize(outcomes)
	fmt.Fprintf(deps.Stderr, "%d constituencies: %d declared, %d counting, %d failed, %s votes\n",
		summary.Total, summary.Declared, summary.Pending, summary.Failed, collect.FormatVotes(summary.Votes))

	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ecidata.ErrorMessage(err))
		return err
	}
	if summary.Failed == summary.Total {
		return fmt.Errorf("all %d lookups failed", summary.Total)
	}
	return nil
}

// renderOutcomes writes one table row per outcome, leaders first.
func renderOutcomes(w io.Writer, outcomes []collect.Outcome) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Ref", "Constituency", "Status", "Leader", "Party", "Votes", "Margin"})
	for _, o := range outcomes {
		if o.Err != nil || o.Result == nil {
			t.AppendRow(table.Row{o.Ref.String(), "", "error", ecidata.ErrorMessage(o.Err), "", "", ""})
			continue
		}
		r := o.Result
		leader, _ := r.Leader()
		t.AppendRow(table.Row{
			o.Ref.String(),
			r.Constituency(),
			collect.FormatStatus(r),
			leader.Candidate,
			leader.Party,
			collect.FormatVotes(r.TotalVotes()),
			collect.FormatVotes(r.Margin()),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

type outcomeJSON struct {
	Ref    string                      `json:"ref"`
	Result *ecidata.ConstituencyResult `json:"result,omitempty"`
	Code   string                      `json:"code,omitempty"`
	Error  string                      `json:"error,omitempty"`
}

// writeOutcomesJSON writes one JSON object per line.
func writeOutcomesJSON(w io.Writer, outcomes []collect.Outcome) error {
	enc := json.NewEncoder(w)
	for _, o := range outcomes {
		v := outcomeJSON{Ref: o.Ref.String(), Result: o.Result}
		if o.Err != nil {
			v.Code = ecidata.ErrorCode(o.Err)
			v.Error = ecidata.ErrorMessage(o.Err)
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}
