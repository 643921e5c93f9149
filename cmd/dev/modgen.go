// Package dev implements developer tooling subcommands for SandScript.
package dev

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/urfave/cli/v3"
)

const modulePath = "github.com/rubiojr/sandscript/modules/"

// Command returns the "dev" CLI command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "dev",
		Usage: "Developer tools for SandScript",
		Commands: []*cli.Command{
			modgenCommand(),
		},
	}
}

func modgenCommand() *cli.Command {
	return &cli.Command{
		Name:      "modgen",
		Usage:     "Scaffold a new native module",
		ArgsUsage: "<name>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "funcs",
				Usage: "Comma-separated function names (e.g. encode,decode)",
			},
			&cli.BoolFlag{
				Name:  "global",
				Usage: "Expose functions without the module prefix",
			},
			&cli.StringFlag{
				Name:  "root",
				Usage: "Repository root holding main.go and modules/",
				Value: ".",
			},
		},
		Action: modgenAction,
	}
}

var validModName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func modgenAction(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: sandscript dev modgen <name> [--funcs f1,f2,...]")
	}

	name := cmd.Args().First()
	if !validModName.MatchString(name) {
		return fmt.Errorf("invalid module name %q: must be lowercase alphanumeric with underscores", name)
	}
	funcs := parseFuncs(cmd.String("funcs"))
	for _, f := range funcs {
		if !validModName.MatchString(f) {
			return fmt.Errorf("invalid function name %q", f)
		}
	}

	root := cmd.String("root")
	dir := filepath.Join(root, "modules", name)
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("directory %s already exists", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	data := modgenData{
		Name:   name,
		Pkg:    name + "mod",
		Type:   toPascalCase(name),
		Funcs:  funcs,
		Global: cmd.Bool("global"),
	}
	w := cmd.Root().Writer
	files := []struct {
		name string
		tmpl string
	}{
		{filepath.Join(dir, name+".go"), registrationTmpl},
		{filepath.Join(dir, "runtime.go"), runtimeTmpl},
	}
	for _, f := range files {
		if err := writeTemplate(f.name, f.tmpl, data); err != nil {
			return err
		}
		fmt.Fprintf(w, "Created %s\n", f.name)
	}

	mainGo := filepath.Join(root, "main.go")
	if err := addBlankImport(mainGo, name); err != nil {
		fmt.Fprintf(cmd.Root().ErrWriter, "Warning: could not update %s: %v\n", mainGo, err)
		fmt.Fprintf(w, "Add manually: _ %q\n", modulePath+name)
	} else {
		fmt.Fprintf(w, "Added import to %s\n", mainGo)
	}

	fmt.Fprintf(w, "\nFill in the method implementations in %s\n", filepath.Join(dir, "runtime.go"))
	return nil
}

func parseFuncs(s string) []string {
	if s == "" {
		return nil
	}
	var funcs []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			funcs = append(funcs, p)
		}
	}
	return funcs
}

type modgenData struct {
	Name   string
	Pkg    string
	Type   string
	Funcs  []string
	Global bool
}

func toPascalCase(s string) string {
	parts := strings.Split(s, "_")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "")
}

func writeTemplate(path, tmplStr string, data modgenData) error {
	t, err := template.New("").Funcs(template.FuncMap{
		"pascal": toPascalCase,
	}).Parse(tmplStr)
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	return t.Execute(f, data)
}

// addBlankImport inserts the module import after the last module import
// of main.go.
func addBlankImport(mainGo, name string) error {
	data, err := os.ReadFile(mainGo)
	if err != nil {
		return err
	}

	importLine := fmt.Sprintf("\t_ %q", modulePath+name)
	content := string(data)
	if strings.Contains(content, importLine) {
		return nil
	}

	lines := strings.Split(content, "\n")
	last := -1
	for i, line := range lines {
		if strings.Contains(line, "\""+modulePath) {
			last = i
		}
	}
	if last < 0 {
		return fmt.Errorf("could not find insertion point")
	}
	lines = append(lines[:last+1], append([]string{importLine}, lines[last+1:]...)...)
	return os.WriteFile(mainGo, []byte(strings.Join(lines, "\n")), 0o644)
}

var registrationTmpl = `package {{.Pkg}}

import "github.com/rubiojr/sandscript/modules"

var _{{.Name}} = &{{.Type}}{}

func init() {
	modules.Register(&modules.Module{
		Name: "{{.Name}}",
{{- if .Global}}
		Global: true,
{{- end}}
{{- if .Funcs}}
		Funcs: []modules.FuncDef{
{{- range .Funcs}}
			{Name: "{{.}}", Fn: _{{$.Name}}.{{. | pascal}}, ArgNames: []string{"value"}},
{{- end}}
		},
{{- end}}
	})
}
`

var runtimeTmpl = `package {{.Pkg}}
{{if .Funcs}}
import (
	"errors"

	"github.com/rubiojr/sandscript/interop"
)
{{end}}
// --- {{.Name}} module ---

type {{.Type}} struct{}
{{range .Funcs}}
func (*{{$.Type}}) {{. | pascal}}(h interop.Host, v interop.Value) (interop.Value, error) {
	return interop.Value{}, errors.New("{{$.Name}}.{{.}}: not implemented")
}
{{end}}`
