package collect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/ecidata"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Fingerprint returns a hash of everything a result reports. Two results
// have the same fingerprint when they show the same names, status and
// candidate rows in the same order.
func Fingerprint(r *ecidata.ConstituencyResult) string {
	var b strings.Builder
	b.WriteString(r.State())
	b.WriteByte(0)
	b.WriteString(r.Constituency())
	b.WriteByte(0)
	b.WriteString(strconv.FormatBool(r.Declared()))
	for _, cv := range r.CandidateVotes() {
		b.WriteByte(0)
		b.WriteString(cv.Candidate)
		b.WriteByte(0)
		b.WriteString(cv.Party)
		b.WriteByte(0)
		b.WriteString(strconv.Itoa(cv.Votes))
	}
	return fmt.Sprintf("%x", xxhash.Sum64String(b.String()))
}

var printer = message.NewPrinter(language.English)

// FormatVotes formats a vote count with thousands separators.
func FormatVotes(votes int) string {
	return printer.Sprintf("%d", votes)
}

// FormatShare formats votes as a percentage of total.
func FormatShare(votes, total int) string {
	if total <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", float64(votes)*100/float64(total))
}

// FormatStatus describes whether a result is final.
func FormatStatus(r *ecidata.ConstituencyResult) string {
	if r.Declared() {
		return "declared"
	}
	return "counting"
}
