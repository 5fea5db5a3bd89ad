package etree_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/ecidata"
	"github.com/fwojciec/ecidata/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resultsLine builds a results line with the defects the live pages have:
// unquoted align attributes and a stray <td> closing the label cell.
func resultsLine(label, status string, rows ...[3]string) string {
	var b strings.Builder
	b.WriteString(`<table style="margin:auto" border="1">`)
	fmt.Fprintf(&b, `<tr><td align=left colspan="3">%s<td></tr>`, label)
	fmt.Fprintf(&b, `<tr><td align=left colspan="3">%s</td></tr>`, status)
	b.WriteString(`<tr><th>Candidate</th><th>Party</th><th align=right>Votes</th></tr>`)
	for _, r := range rows {
		fmt.Fprintf(&b, `<tr><td align=left>%s</td><td align=left>%s</td><td align=right>%s</td></tr>`, r[0], r[1], r[2])
	}
	b.WriteString(`</table>`)
	b.WriteString(`<div class="footer">Last updated</div>`)
	b.WriteString(`<script type="text/javascript">var refresh = 30;</script>`)
	return b.String()
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	t.Run("repairs known defects", func(t *testing.T) {
		t.Parallel()

		got := etree.Sanitize([]byte(`<tr><td align=left>a<td></tr><tr><td align=right>1</td></tr>`))

		assert.Equal(t, `<div><tr><td align="left">a</td></tr><tr><td align="right">1</td></tr></div>`, string(got))
	})

	t.Run("passes through a line without defects", func(t *testing.T) {
		t.Parallel()

		line := `<table><tr><td align="left">a</td></tr></table><p/><p/>`

		got := etree.Sanitize([]byte(line))

		assert.Equal(t, "<div>"+line+"</div>", string(got))
	})

	t.Run("does not modify its input", func(t *testing.T) {
		t.Parallel()

		line := []byte(`<td align=left>a<td></tr>`)

		_ = etree.Sanitize(line)

		assert.Equal(t, `<td align=left>a<td></tr>`, string(line))
	})

	t.Run("sanitized defective line parses", func(t *testing.T) {
		t.Parallel()

		line := resultsLine("Goa - Panaji", "Result Declared", [3]string{"X", "Y", "1"})
		require.Contains(t, line, "align=left")
		require.Contains(t, line, "align=right")
		require.Contains(t, line, "<td></tr>")

		_, err := etree.NewExtractor().Extract([]byte(line))

		assert.NoError(t, err)
	})
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts state, constituency, status and candidates", func(t *testing.T) {
		t.Parallel()

		line := resultsLine("Karnataka - Bangalore South", "Result Declared",
			[3]string{"A. Kumar", "PartyX", "55000"},
			[3]string{"B. Singh", "PartyY", "42000"},
		)

		r, err := etree.NewExtractor().Extract([]byte(line))

		require.NoError(t, err)
		assert.Equal(t, "Karnataka", r.State())
		assert.Equal(t, "Bangalore South", r.Constituency())
		assert.True(t, r.Declared())
		assert.Equal(t, []ecidata.CandidateVotes{
			{Candidate: "A. Kumar", Party: "PartyX", Votes: 55000},
			{Candidate: "B. Singh", Party: "PartyY", Votes: 42000},
		}, r.CandidateVotes())
		assert.Equal(t, 97000, r.TotalVotes())
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		line := []byte(resultsLine("Kerala - Wayanad", "Result Declared",
			[3]string{"R. Gandhi", "INC", "706367"},
			[3]string{"Annie Raja", "CPI", "283023"},
		))
		e := etree.NewExtractor()

		first, err := e.Extract(line)
		require.NoError(t, err)
		second, err := e.Extract(line)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("preserves source row order", func(t *testing.T) {
		t.Parallel()

		line := resultsLine("Punjab - Amritsar", "Result Declared",
			[3]string{"Middle", "PartyB", "500"},
			[3]string{"Zed", "PartyC", "900"},
			[3]string{"Alpha", "PartyA", "100"},
		)

		r, err := etree.NewExtractor().Extract([]byte(line))

		require.NoError(t, err)
		var names []string
		for _, cv := range r.CandidateVotes() {
			names = append(names, cv.Candidate)
		}
		assert.Equal(t, []string{"Middle", "Zed", "Alpha"}, names)
	})

	t.Run("splits label on the first separator only", func(t *testing.T) {
		t.Parallel()

		line := resultsLine("Maharashtra - Mumbai - North", "Result Declared",
			[3]string{"C. Patil", "PartyZ", "1"},
		)

		r, err := etree.NewExtractor().Extract([]byte(line))

		require.NoError(t, err)
		assert.Equal(t, "Maharashtra", r.State())
		assert.Equal(t, "Mumbai - North", r.Constituency())
	})

	t.Run("trims whitespace around names and votes", func(t *testing.T) {
		t.Parallel()

		line := resultsLine("  Goa  -  Panaji ", "Result Declared",
			[3]string{"  D. Naik ", " PartyQ ", " 7 "},
		)

		r, err := etree.NewExtractor().Extract([]byte(line))

		require.NoError(t, err)
		assert.Equal(t, "Goa", r.State())
		assert.Equal(t, "Panaji", r.Constituency())
		assert.Equal(t, ecidata.CandidateVotes{Candidate: "D. Naik", Party: "PartyQ", Votes: 7}, r.CandidateVotes()[0])
	})

	t.Run("reads text nested inside cell markup", func(t *testing.T) {
		t.Parallel()

		line := resultsLine("Assam - Jorhat", "<b>Result Declared</b>",
			[3]string{"<b>E. Gogoi</b>", "PartyR", "<span>12</span>"},
		)

		r, err := etree.NewExtractor().Extract([]byte(line))

		require.NoError(t, err)
		assert.True(t, r.Declared())
		assert.Equal(t, "E. Gogoi", r.CandidateVotes()[0].Candidate)
		assert.Equal(t, 12, r.CandidateVotes()[0].Votes)
	})

	t.Run("resolves HTML entities", func(t *testing.T) {
		t.Parallel()

		line := resultsLine("Delhi - New&nbsp;Delhi", "Result Declared",
			[3]string{"F. Das&nbsp;", "A &amp; B", "3"},
		)

		r, err := etree.NewExtractor().Extract([]byte(line))

		require.NoError(t, err)
		assert.Equal(t, "New Delhi", r.Constituency())
		assert.Equal(t, "F. Das", r.CandidateVotes()[0].Candidate)
		assert.Equal(t, "A & B", r.CandidateVotes()[0].Party)
	})

	t.Run("flattens row groups", func(t *testing.T) {
		t.Parallel()

		line := `<table><tbody>` +
			`<tr><td>Goa - Panaji</td></tr>` +
			`<tr><td>Result Declared</td></tr>` +
			`<tr><th>C</th><th>P</th><th>V</th></tr>` +
			`<tr><td>G. Sawant</td><td>PartyS</td><td>10</td></tr>` +
			`</tbody></table><div/><div/>`

		r, err := etree.NewExtractor().Extract([]byte(line))

		require.NoError(t, err)
		assert.Equal(t, 1, r.Len())
		assert.Equal(t, 10, r.TotalVotes())
	})

	t.Run("accepts a table without candidate rows", func(t *testing.T) {
		t.Parallel()

		line := resultsLine("Bihar - Patna Sahib", "Poll Countermanded")

		r, err := etree.NewExtractor().Extract([]byte(line))

		require.NoError(t, err)
		assert.Equal(t, 0, r.Len())
		assert.Equal(t, 0, r.TotalVotes())
		assert.False(t, r.Declared())
	})
}

func TestExtractor_Extract_Declared(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status   string
		declared bool
	}{
		{"Result Declared", true},
		{"Status: Result Declared (final)", true},
		{"Counting in progress", false},
		{"Trends", false},
		{"result declared", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			t.Parallel()

			line := resultsLine("Goa - Panaji", tt.status, [3]string{"X", "Y", "1"})

			r, err := etree.NewExtractor().Extract([]byte(line))

			require.NoError(t, err)
			assert.Equal(t, tt.declared, r.Declared())
		})
	}
}

func TestExtractor_Extract_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		code string
	}{
		{
			name: "empty line",
			line: "",
			code: ecidata.EUNEXPECTEDSHAPE,
		},
		{
			name: "unclosed element",
			line: `<table><tr><td>Goa - Panaji</td></tr><div/><div/>`,
			code: ecidata.EMALFORMEDMARKUP,
		},
		{
			name: "unquoted attribute other than align",
			line: `<table width=100><tr><td>x</td></tr></table><div/><div/>`,
			code: ecidata.EMALFORMEDMARKUP,
		},
		{
			name: "stray closing tag",
			line: `<table></table></div><div/><div/>`,
			code: ecidata.EMALFORMEDMARKUP,
		},
		{
			name: "unknown entity",
			line: `<table><tr><td>&bogus;</td></tr></table><div/><div/>`,
			code: ecidata.EMALFORMEDMARKUP,
		},
		{
			name: "two children",
			line: `<table></table><div/>`,
			code: ecidata.EUNEXPECTEDSHAPE,
		},
		{
			name: "four children",
			line: `<table></table><div/><div/><div/>`,
			code: ecidata.EUNEXPECTEDSHAPE,
		},
		{
			name: "first child is not a table",
			line: `<div/><table></table><div/>`,
			code: ecidata.EUNEXPECTEDSHAPE,
		},
		{
			name: "fewer than three rows",
			line: `<table><tr><td>Goa - Panaji</td></tr><tr><td>Result Declared</td></tr></table><div/><div/>`,
			code: ecidata.EUNEXPECTEDSHAPE,
		},
		{
			name: "label row without cells",
			line: `<table><tr></tr><tr><td>s</td></tr><tr><th>h</th></tr></table><div/><div/>`,
			code: ecidata.EUNEXPECTEDSHAPE,
		},
		{
			name: "label without separator",
			line: resultsLine("Goa Panaji", "Result Declared"),
			code: ecidata.EUNEXPECTEDSHAPE,
		},
		{
			name: "label with empty constituency",
			line: resultsLine("Goa - ", "Result Declared"),
			code: ecidata.EUNEXPECTEDSHAPE,
		},
		{
			name: "candidate row with two cells",
			line: `<table><tr><td>Goa - Panaji</td></tr><tr><td>s</td></tr><tr><th>h</th></tr><tr><td>X</td><td>Y</td></tr></table><div/><div/>`,
			code: ecidata.EUNEXPECTEDSHAPE,
		},
		{
			name: "candidate row with empty party",
			line: resultsLine("Goa - Panaji", "Result Declared", [3]string{"X", " ", "1"}),
			code: ecidata.EUNEXPECTEDSHAPE,
		},
		{
			name: "non-numeric vote count",
			line: resultsLine("Goa - Panaji", "Result Declared", [3]string{"X", "Y", "12a"}),
			code: ecidata.EINVALIDVOTECOUNT,
		},
		{
			name: "negative vote count",
			line: resultsLine("Goa - Panaji", "Result Declared", [3]string{"X", "Y", "-5"}),
			code: ecidata.EINVALIDVOTECOUNT,
		},
		{
			name: "grouped vote count",
			line: resultsLine("Goa - Panaji", "Result Declared", [3]string{"X", "Y", "55,000"}),
			code: ecidata.EINVALIDVOTECOUNT,
		},
		{
			name: "empty vote count",
			line: resultsLine("Goa - Panaji", "Result Declared", [3]string{"X", "Y", ""}),
			code: ecidata.EINVALIDVOTECOUNT,
		},
		{
			name: "vote count out of range",
			line: resultsLine("Goa - Panaji", "Result Declared", [3]string{"X", "Y", "99999999999999999999999"}),
			code: ecidata.EINVALIDVOTECOUNT,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := etree.NewExtractor().Extract([]byte(tt.line))

			require.Error(t, err)
			assert.Nil(t, r)
			assert.Equal(t, tt.code, ecidata.ErrorCode(err))
		})
	}
}

func TestExtractor_Extract_InvalidVoteAfterValidRows(t *testing.T) {
	t.Parallel()

	line := resultsLine("Goa - Panaji", "Result Declared",
		[3]string{"X", "Y", "10"},
		[3]string{"Z", "W", "n/a"},
	)

	r, err := etree.NewExtractor().Extract([]byte(line))

	require.Error(t, err)
	assert.Nil(t, r)
	assert.Equal(t, ecidata.EINVALIDVOTECOUNT, ecidata.ErrorCode(err))
	assert.Contains(t, ecidata.ErrorMessage(err), `"n/a"`)
}
