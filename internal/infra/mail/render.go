package mail

import (
	"bytes"
	"strings"
	"text/template"
	"time"

	"swimbooking/internal/pkg/errs"
	"swimbooking/internal/usecase/notify"
	"swimbooking/internal/usecase/shared"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

type templateSet struct {
	subject string
	body    *template.Template
}

var templates = map[string]templateSet{
	shared.EventBookingCreated: {
		subject: "Your swim lessons are booked",
		body: template.Must(template.New("created").Parse(`Hi {{.Name}},

We booked **{{.Count}}** lesson{{if gt .Count 1}}s{{end}} for your swimmer.
{{if .Start}}The first lesson starts **{{.Start}}**.{{end}}

See you at the pool!
`)),
	},
	shared.EventBookingCancelled: {
		subject: "Lesson cancelled",
		body: template.Must(template.New("cancelled").Parse(`Hi {{.Name}},

Your lesson{{if .Start}} on **{{.Start}}**{{end}} has been cancelled.
{{if .Floating}}
A makeup credit has been added to your account. You can use it to book another lesson.
{{end}}`)),
	},
	shared.EventBookingRescheduled: {
		subject: "Lesson rescheduled",
		body: template.Must(template.New("rescheduled").Parse(`Hi {{.Name}},

Your lesson has moved{{if .Start}} to **{{.Start}}**{{end}}.

Reply to this email if the new time does not work for you.
`)),
	},
	shared.EventSessionClosed: {
		subject: "Lesson cancelled: session closed",
		body: template.Must(template.New("closed").Parse(`Hi {{.Name}},

We had to close the session{{if .Start}} on **{{.Start}}**{{end}} ({{.Reason}}), so your lesson is cancelled.
{{if .Floating}}
A makeup credit has been added to your account.
{{end}}`)),
	},
	shared.EventBlockCancelled: {
		subject: "Lesson series cancelled",
		body: template.Must(template.New("block").Parse(`Hi {{.Name}},

We cancelled **{{.Count}}** upcoming lesson{{if gt .Count 1}}s{{end}} in your series.
{{if .Floating}}
{{.Floating}} makeup credit{{if gt .Floating 1}}s were{{else}} was{{end}} added to your account.
{{end}}`)),
	},
}

type templateData struct {
	Name     string
	Count    int
	Start    string
	Reason   string
	Floating int
}

// MarkdownRenderer fills a markdown template per event kind and converts it
// to HTML. Raw HTML in the template output is escaped.
type MarkdownRenderer struct {
	md  goldmark.Markdown
	loc *time.Location
}

func NewMarkdownRenderer(loc *time.Location) *MarkdownRenderer {
	if loc == nil {
		loc = time.UTC
	}
	return &MarkdownRenderer{
		md:  goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps())),
		loc: loc,
	}
}

func (r *MarkdownRenderer) Render(ev shared.BookingEvent, recipientName string) (notify.Message, error) {
	set, ok := templates[ev.Kind]
	if !ok {
		return notify.Message{}, errs.Newf("no template for %s", ev.Kind)
	}

	data := templateData{
		Name:     strings.TrimSpace(recipientName),
		Count:    len(ev.BookingIDs),
		Reason:   strings.ReplaceAll(ev.Reason, "_", " "),
		Floating: ev.FloatingCreated,
	}
	if data.Name == "" {
		data.Name = "there"
	}
	if ev.SessionStart != nil {
		data.Start = ev.SessionStart.In(r.loc).Format("Mon Jan 2, 3:04 PM")
	}

	var src bytes.Buffer
	if err := set.body.Execute(&src, data); err != nil {
		return notify.Message{}, errs.Wrapf(err, "failed to fill %s template", ev.Kind)
	}

	var out bytes.Buffer
	if err := r.md.Convert(src.Bytes(), &out); err != nil {
		return notify.Message{}, errs.Wrap(err, "failed to render markdown")
	}
	return notify.Message{Subject: set.subject, HTML: out.String()}, nil
}
