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

// Run executes the get command.
func (c *GetCmd) Run(deps *Dependencies) error {
	r, err := deps.Results.GetConstituencyResults(deps.Ctx, c.State, c.Constituency)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ecidata.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	renderResult(deps.Stdout, r)
	return nil
}

// renderResult writes r as a table of candidates with vote shares.
func renderResult(w io.Writer, r *ecidata.ConstituencyResult) {
	total := r.TotalVotes()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("%s - %s (%s)", r.State(), r.Constituency(), collect.FormatStatus(r))
	t.AppendHeader(table.Row{"#", "Candidate", "Party", "Votes", "Share"})
	for i, cv := range r.CandidateVotes() {
		t.AppendRow(table.Row{i + 1, cv.Candidate, cv.Party, collect.FormatVotes(cv.Votes), collect.FormatShare(cv.Votes, total)})
	}
	t.AppendFooter(table.Row{"", "Total", "", collect.FormatVotes(total), ""})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	t.SetStyle(table.StyleRounded)
	t.Render()

	if leader, ok := r.Leader(); ok && r.Len() > 1 {
		fmt.Fprintf(w, "%s (%s) leads by %s votes\n", leader.Candidate, leader.Party, collect.FormatVotes(r.Margin()))
	}
}
