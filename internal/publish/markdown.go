package publish

import (
	"bytes"
	"fmt"
	"strings"

	"appresp/internal/model"
	"appresp/internal/query"
)

// RenderApplicationMarkdown renders one application and all its question
// responses as a standalone markdown page.
func RenderApplicationMarkdown(a model.Application) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + strings.TrimSpace(a.Name))
	writeLn("")

	writeLn("## Meta")
	writeLn("")
	writeLn("- ID: " + a.ID)
	if p := strings.TrimSpace(a.Purpose); p != "" {
		writeLn("- Purpose: " + p)
	}
	if d := model.FormatDate(a.DateSubmitted); d != "" {
		writeLn("- Submitted: " + d)
	}
	writeLn("- Status: " + a.Status.Label())
	writeLn("")

	if n := strings.TrimSpace(a.NotesText()); n != "" {
		writeLn("## Notes")
		writeLn("")
		writeLn(n)
		writeLn("")
	}

	writeLn(fmt.Sprintf("## Questions & Responses (%d)", len(a.Questions)))
	writeLn("")
	for i, q := range a.Questions {
		writeLn(fmt.Sprintf("### %d. %s", i+1, strings.TrimSpace(q.QuestionText)))
		writeLn("")
		if r := strings.TrimSpace(q.Response); r != "" {
			writeLn(r)
			writeLn("")
		}
		if len(q.Tags) > 0 {
			tags := make([]string, 0, len(q.Tags))
			for _, t := range q.Tags {
				tags = append(tags, "`"+t+"`")
			}
			writeLn("Tags: " + strings.Join(tags, " "))
			writeLn("")
		}
	}
	return buf.String()
}

// RenderIndexMarkdown lists the applications with links to their pages. The
// filter is described in the header when it narrows the list.
func RenderIndexMarkdown(apps []model.Application, f query.Filter) string {
	var buf bytes.Buffer
	buf.WriteString("# Application Response Manager\n\n")
	buf.WriteString(model.CountLabel(len(apps)) + "\n\n")

	if f.Active() {
		buf.WriteString("Filters:\n\n")
		if len(f.Tags) > 0 {
			buf.WriteString("- Tags: " + strings.Join(f.Tags, ", ") + "\n")
		}
		if s := strings.TrimSpace(f.Search); s != "" {
			buf.WriteString("- Search: " + s + "\n")
		}
		buf.WriteString("\n")
	}

	for _, a := range apps {
		meta := a.Status.Label()
		if d := model.FormatDate(a.DateSubmitted); d != "" {
			meta = d + ", " + meta
		}
		fmt.Fprintf(&buf, "- [%s](applications/%s.md) (%s)\n", strings.TrimSpace(a.Name), a.ID, meta)
	}
	return buf.String()
}
