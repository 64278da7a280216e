// Package printers renders entries, reports and suggestions for the terminal.
package printers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"
	sfuzzy "github.com/sahilm/fuzzy"

	"tableflip.dev/symptoms/pkg/app"
	"tableflip.dev/symptoms/pkg/entry"
	"tableflip.dev/symptoms/pkg/timeutil"
)

// NotesWidth is the column notes are wrapped at.
const NotesWidth = 48

type PrettyPrint struct {
	ShowID bool
	// Age adds a relative age column ("5m ago").
	Age bool
	Out io.Writer

	pal *palette
}

// New returns a printer writing to out, or stdout when out is nil.
func New(out io.Writer, showID bool) *PrettyPrint {
	if out == nil {
		out = os.Stdout
	}
	return &PrettyPrint{ShowID: showID, Out: out}
}

func (pp *PrettyPrint) palette() palette {
	if pp.Out == nil {
		pp.Out = os.Stdout
	}
	if pp.pal == nil {
		p := newPalette(pp.Out)
		pp.pal = &p
	}
	return *pp.pal
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.Out)
}

func (pp *PrettyPrint) Title(title string) {
	t := pp.palette().style(boldUnderline...)
	_, _ = t.Fprintln(pp.Out, title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	p := pp.palette()
	t := p.style(boldUnderline...)
	c := p.style(faint...)

	_, _ = t.Fprint(pp.Out, title)
	_, _ = c.Fprintf(pp.Out, " - %d", count)
	switch count {
	case 1:
		_, _ = c.Fprintln(pp.Out, " entry")
	default:
		_, _ = c.Fprintln(pp.Out, " entries")
	}
}

// Entries prints one row per entry: time, category, label, severity and
// wrapped notes.
func (pp *PrettyPrint) Entries(entries []entry.Entry) {
	p := pp.palette()
	if len(entries) == 0 {
		f := p.style(faintItalic...)
		_, _ = f.Fprint(pp.Out, " none\n\n")
		return
	}

	id := p.style(idAttrs...)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, e := range entries {
		row := make([]interface{}, 0, 7)
		if pp.ShowID {
			row = append(row, id.Sprint(e.ID))
		}
		row = append(row, timeutil.LocalDisplay(e.Timestamp.Time))
		if pp.Age {
			row = append(row, timeutil.RelativeAge(e.Timestamp.Time))
		}
		sev := ""
		if s, ok := e.Severity(); ok {
			sev = p.severity(s)
		}
		row = append(row, p.category(e.Category()), e.Label, sev, wordwrap.String(e.Notes, NotesWidth))
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.Out, tbl)
	pp.NewLine()
}

// Created confirms newly logged entries.
func (pp *PrettyPrint) Created(entries []entry.Entry) {
	p := pp.palette()
	ok := p.style(okAttrs...)
	for _, e := range entries {
		_, _ = ok.Fprint(pp.Out, "logged ")
		_, _ = fmt.Fprintf(pp.Out, "%s %s", p.category(e.Category()), e.Label)
		if s, isSymptom := e.Severity(); isSymptom {
			_, _ = fmt.Fprintf(pp.Out, " %s", p.severity(s))
		}
		_, _ = fmt.Fprintf(pp.Out, " at %s", timeutil.LocalDisplay(e.Timestamp.Time))
		if pp.ShowID {
			_, _ = p.style(idAttrs...).Fprintf(pp.Out, " (%s)", e.ID)
		}
		pp.NewLine()
	}
}

// Suggestions prints ranked labels, highlighting the characters of query
// each one matched.
func (pp *PrettyPrint) Suggestions(query string, labels []string) {
	p := pp.palette()
	if len(labels) == 0 {
		_, _ = p.style(faintItalic...).Fprint(pp.Out, " no suggestions\n")
		return
	}

	matched := make(map[string]map[int]struct{}, len(labels))
	if query != "" {
		for _, m := range sfuzzy.Find(query, labels) {
			set := make(map[int]struct{}, len(m.MatchedIndexes))
			for _, i := range m.MatchedIndexes {
				set[i] = struct{}{}
			}
			matched[m.Str] = set
		}
	}

	hi := p.style(highlight...)
	for _, label := range labels {
		var b strings.Builder
		set := matched[label]
		for i, r := range label {
			if _, ok := set[i]; ok {
				b.WriteString(hi.Sprint(string(r)))
			} else {
				b.WriteRune(r)
			}
		}
		_, _ = fmt.Fprintf(pp.Out, "  %s\n", b.String())
	}
}

// Report prints a per category summary.
func (pp *PrettyPrint) Report(r app.ReportResult) {
	p := pp.palette()
	pp.TitleWithCount(fmt.Sprintf("%s - %s",
		r.Since.Local().Format("Jan 2 15:04"), r.Until.Local().Format("Jan 2 15:04")), r.Total)
	if len(r.Sections) == 0 {
		_, _ = p.style(faintItalic...).Fprint(pp.Out, " none\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, s := range r.Sections {
		extra := ""
		if s.Category.IsSymptom() {
			extra = fmt.Sprintf("avg %.1f, max %s", s.AverageSeverity, p.severity(s.MaxSeverity))
		}
		tbl.AddRow(p.category(s.Category), s.Count, extra)
		for _, l := range s.Labels {
			tbl.AddRow("", "", fmt.Sprintf("%dx %s", l.Count, l.Label))
		}
	}
	_, _ = fmt.Fprintln(pp.Out, tbl)
	pp.NewLine()
}

// Deleted confirms a delete, or reports that nothing matched.
func (pp *PrettyPrint) Deleted(id string, existed bool) {
	if !existed {
		_, _ = pp.palette().style(faintItalic...).Fprintf(pp.Out, "no entry %s\n", id)
		return
	}
	_, _ = pp.palette().style(okAttrs...).Fprintf(pp.Out, "deleted %s\n", id)
}
