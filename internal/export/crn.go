package export

import (
	"strings"

	"github.com/javiermolinar/semester/internal/plan"
	"github.com/javiermolinar/semester/internal/scheduler"
)

// Reference is the registration reference of one selected block.
type Reference struct {
	CourseCode string
	Label      string
	CRN        string
}

// References lists the registration references of every entry in add order,
// lecture before tutorial. Blocks without a reference are left out.
func References(entries []plan.Entry, cat plan.Catalog, term string) []Reference {
	var out []Reference
	for _, e := range entries {
		c, err := cat.Get(e.CourseCode)
		if err != nil {
			continue
		}
		sel := e.Selection
		for _, b := range scheduler.SelectedBlocks(c, term, &sel) {
			if b.ExternalRef == "" {
				continue
			}
			out = append(out, Reference{CourseCode: c.Code, Label: b.Label, CRN: b.ExternalRef})
		}
	}
	return out
}

// CRNList joins the references with spaces, the form registration forms accept.
func CRNList(refs []Reference) string {
	crns := make([]string, 0, len(refs))
	for _, r := range refs {
		crns = append(crns, r.CRN)
	}
	return strings.Join(crns, " ")
}
