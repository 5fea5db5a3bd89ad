// Package etree implements ecidata.Extractor with a strict XML parse of the
// sanitized results line.
package etree

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/ecidata"
)

// Ensure Extractor implements ecidata.Extractor at compile time.
var _ ecidata.Extractor = (*Extractor)(nil)

// Rows before the first candidate row: label, status and column headers.
const headerRows = 3

// labelSeparator splits the "State - Constituency" label.
const labelSeparator = " - "

// declaredMarker in the status cell means counting has concluded.
const declaredMarker = "Result Declared"

// replacements repair the known defects of the results line, in order.
var replacements = []struct{ old, new []byte }{
	{[]byte(`align=left`), []byte(`align="left"`)},
	{[]byte(`align=right`), []byte(`align="right"`)},
	{[]byte(`<td></tr>`), []byte(`</td></tr>`)},
}

var (
	wrapperOpen  = []byte("<div>")
	wrapperClose = []byte("</div>")
)

// Sanitize repairs the known defects of a results line and wraps it in a
// single container element so it parses as one XML document.
func Sanitize(line []byte) []byte {
	fixed := line
	for _, r := range replacements {
		fixed = bytes.ReplaceAll(fixed, r.old, r.new)
	}
	out := make([]byte, 0, len(wrapperOpen)+len(fixed)+len(wrapperClose))
	out = append(out, wrapperOpen...)
	out = append(out, fixed...)
	out = append(out, wrapperClose...)
	return out
}

// Extractor parses results lines. It holds no state and is safe for
// concurrent use.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract sanitizes line, parses it strictly and reads the result table.
func (e *Extractor) Extract(line []byte) (*ecidata.ConstituencyResult, error) {
	root, err := parse(Sanitize(line))
	if err != nil {
		return nil, err
	}

	table, err := resultTable(root)
	if err != nil {
		return nil, err
	}

	rows := tableRows(table)
	if len(rows) < headerRows {
		return nil, ecidata.Errorf(ecidata.EUNEXPECTEDSHAPE, "result table has %d rows, want at least %d", len(rows), headerRows)
	}

	label, err := firstCellText(rows[0], "label")
	if err != nil {
		return nil, err
	}
	state, constituency, err := splitLabel(label)
	if err != nil {
		return nil, err
	}

	status, err := firstCellText(rows[1], "status")
	if err != nil {
		return nil, err
	}
	declared := strings.Contains(status, declaredMarker)

	votes := make([]ecidata.CandidateVotes, 0, len(rows)-headerRows)
	for i, row := range rows[headerRows:] {
		cv, err := candidateVotes(row, i)
		if err != nil {
			return nil, err
		}
		votes = append(votes, cv)
	}

	return ecidata.NewConstituencyResult(state, constituency, votes, declared), nil
}

// parse reads doc as strict XML and returns its single root element.
func parse(doc []byte) (*etree.Element, error) {
	d := etree.NewDocument()
	d.ReadSettings = etree.ReadSettings{
		Permissive: false,
		Entity:     xml.HTMLEntity,
	}
	if err := d.ReadFromBytes(doc); err != nil {
		return nil, ecidata.WrapError(ecidata.EMALFORMEDMARKUP, err, "parsing sanitized results line")
	}
	if n := len(d.ChildElements()); n != 1 {
		return nil, ecidata.Errorf(ecidata.EMALFORMEDMARKUP, "sanitized results line has %d top-level elements, want 1", n)
	}
	return d.Root(), nil
}

// resultTable checks the container shape and returns its table.
func resultTable(root *etree.Element) (*etree.Element, error) {
	kids := root.ChildElements()
	if len(kids) != 3 {
		return nil, ecidata.Errorf(ecidata.EUNEXPECTEDSHAPE, "results container has %d children, want 3", len(kids))
	}
	if !strings.EqualFold(kids[0].Tag, "table") {
		return nil, ecidata.Errorf(ecidata.EUNEXPECTEDSHAPE, "first results child is <%s>, want <table>", kids[0].Tag)
	}
	return kids[0], nil
}

// tableRows returns the rows of table in document order. Row group
// elements are flattened into their rows.
func tableRows(table *etree.Element) []*etree.Element {
	var rows []*etree.Element
	for _, child := range table.ChildElements() {
		switch strings.ToLower(child.Tag) {
		case "thead", "tbody", "tfoot":
			rows = append(rows, child.ChildElements()...)
		default:
			rows = append(rows, child)
		}
	}
	return rows
}

func firstCellText(row *etree.Element, name string) (string, error) {
	cells := row.ChildElements()
	if len(cells) == 0 {
		return "", ecidata.Errorf(ecidata.EUNEXPECTEDSHAPE, "%s row has no cells", name)
	}
	return cellText(cells[0]), nil
}

// splitLabel splits "State - Constituency" on the first separator.
// Constituency names may contain the separator themselves.
func splitLabel(label string) (state, constituency string, err error) {
	parts := strings.Split(label, labelSeparator)
	if len(parts) < 2 {
		return "", "", ecidata.Errorf(ecidata.EUNEXPECTEDSHAPE, "label %q has no %q separator", label, labelSeparator)
	}
	state = strings.TrimSpace(parts[0])
	constituency = strings.TrimSpace(strings.Join(parts[1:], labelSeparator))
	if state == "" || constituency == "" {
		return "", "", ecidata.Errorf(ecidata.EUNEXPECTEDSHAPE, "label %q has an empty state or constituency", label)
	}
	return state, constituency, nil
}

// candidateVotes reads one candidate row. i counts candidate rows from 0.
func candidateVotes(row *etree.Element, i int) (ecidata.CandidateVotes, error) {
	cells := row.ChildElements()
	if len(cells) < 3 {
		return ecidata.CandidateVotes{}, ecidata.Errorf(ecidata.EUNEXPECTEDSHAPE, "candidate row %d has %d cells, want 3", i+1, len(cells))
	}

	candidate := strings.TrimSpace(cellText(cells[0]))
	party := strings.TrimSpace(cellText(cells[1]))
	if candidate == "" || party == "" {
		return ecidata.CandidateVotes{}, ecidata.Errorf(ecidata.EUNEXPECTEDSHAPE, "candidate row %d has an empty candidate or party", i+1)
	}

	raw := strings.TrimSpace(cellText(cells[2]))
	votes, err := parseVotes(raw)
	if err != nil {
		return ecidata.CandidateVotes{}, ecidata.WrapError(ecidata.EINVALIDVOTECOUNT, err, "candidate %q has vote count %q", candidate, raw)
	}

	return ecidata.CandidateVotes{Candidate: candidate, Party: party, Votes: votes}, nil
}

// parseVotes accepts base-10 digits only.
func parseVotes(s string) (int, error) {
	if s == "" || strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(s)
}

// cellText returns all character data inside el, in document order.
func cellText(el *etree.Element) string {
	var b strings.Builder
	var walk func(*etree.Element)
	walk = func(el *etree.Element) {
		for _, tok := range el.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				b.WriteString(t.Data)
			case *etree.Element:
				walk(t)
			}
		}
	}
	walk(el)
	return b.String()
}
