package docs

import (
	"io"
	"text/template"

	"github.com/keshon/swolebro/internal/command"
	"github.com/keshon/swolebro/pkg/cmd"
)

var readmeTmpl = template.Must(template.New("readme").Parse(`# Commands
{{range .}}
### {{.Title}}

{{range .Commands}}- **/{{.Name}}** ({{.Group}}) — {{.Description}}
{{else}}_none_
{{end}}{{end}}`))

// Entry is one command line of the generated table.
type Entry struct {
	Name        string
	Group       string
	Description string
}

// Section is a titled list of commands.
type Section struct {
	Title    string
	Commands []Entry
}

// Sections groups the commands in r by scope, global first, each sorted by name.
func Sections(r *cmd.Registry) []Section {
	out := []Section{
		{Title: "Global commands"},
		{Title: "Guild commands"},
	}
	for _, c := range r.GetAll() {
		meta, ok := cmd.Root(c).(command.DiscordMeta)
		if !ok {
			continue
		}
		e := Entry{Name: c.Name(), Group: meta.Group(), Description: c.Description()}
		switch meta.Scope() {
		case command.ScopeGlobal:
			out[0].Commands = append(out[0].Commands, e)
		case command.ScopeGuild:
			out[1].Commands = append(out[1].Commands, e)
		}
	}
	return out
}

// WriteReadme renders the command table of r as markdown.
func WriteReadme(w io.Writer, r *cmd.Registry) error {
	return readmeTmpl.Execute(w, Sections(r))
}
