package share

import (
	"strings"

	"github.com/rostralabs/rostra/internal/domain/contributor"
)

// ExportHeader is the roster CSV header row.
const ExportHeader = "Email,Assignment Status,Result,Date Added,Date Assigned,Date Completed,Date Archived"

// ExportCSV renders the full roster, active rows then archived rows, with
// empty strings for unset fields. Fields are joined plainly; the matching
// import parser does not support quoting either.
func ExportCSV(snap contributor.Snapshot) string {
	var b strings.Builder
	b.WriteString(ExportHeader)
	writeRows := func(set []contributor.Contributor) {
		for _, c := range set {
			b.WriteString("\n")
			b.WriteString(strings.Join([]string{
				c.Email,
				string(c.Status),
				string(c.Result),
				c.DateAdded,
				c.DateAssigned,
				c.DateCompleted,
				c.DateArchived,
			}, ","))
		}
	}
	writeRows(snap.Active)
	writeRows(snap.Archived)
	return b.String()
}
