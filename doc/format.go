package doc

import (
	"fmt"
	"strings"

	"github.com/rubiojr/sandscript/interop"
	"github.com/rubiojr/sandscript/modules"
)

const indent = "    "

// block terminates the accumulated sections with exactly one newline.
func block(sb *strings.Builder) string {
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// FormatFile renders the documented methods of a script file. Methods
// without a doc comment are left out.
func FormatFile(fd *FileDoc) string {
	var sb strings.Builder
	if fd.Doc != "" {
		fmt.Fprintf(&sb, "%s\n\n", fd.Doc)
	}
	for _, m := range fd.Methods {
		if m.Doc != "" {
			fmt.Fprintf(&sb, "%s\n", FormatSymbol(m.Doc, m.Signature))
		}
	}
	return block(&sb)
}

// FormatSymbol prints signature followed by its indented documentation.
func FormatSymbol(docStr, signature string) string {
	if docStr == "" {
		return signature + "\n"
	}
	return fmt.Sprintf("%s\n%s%s\n", signature, indent, strings.ReplaceAll(docStr, "\n", "\n"+indent))
}

// FormatModule renders a native module and every method it registers.
func FormatModule(m *modules.Module) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "module %s\n", m.Name)
	if m.Doc != "" {
		fmt.Fprintf(&sb, "%s%s\n", indent, m.Doc)
	}
	sb.WriteByte('\n')
	writeMethods(&sb, m.Methods())
	return block(&sb)
}

func writeMethods(sb *strings.Builder, methods []*interop.Method) {
	for _, meth := range methods {
		sb.WriteString(FormatSymbol(meth.Doc, meth.String()))
	}
}

// FormatAllModules lists the registered modules, one per line.
func FormatAllModules() string {
	var sb strings.Builder
	sb.WriteString("Modules:\n")
	for _, name := range modules.Names() {
		m, _ := modules.Get(name)
		line := strings.TrimRight(fmt.Sprintf("  %-12s %s", name, m.Doc), " ")
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

// Lookup documents name, which is a module, a module function written as
// module.func, or a native method. Every overload of a method is listed.
func Lookup(name string) (string, bool) {
	if m, ok := modules.Get(name); ok {
		return FormatModule(m), true
	}
	if mod, fn, ok := strings.Cut(name, "."); ok && modules.IsModule(mod) {
		meth, ok := modules.LookupFunc(mod, fn)
		if !ok {
			return "", false
		}
		return FormatSymbol(meth.Doc, meth.String()), true
	}
	methods := interop.MethodsNamed(name)
	if len(methods) == 0 {
		return "", false
	}
	var sb strings.Builder
	writeMethods(&sb, methods)
	return sb.String(), true
}
