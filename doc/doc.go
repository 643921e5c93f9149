// Package doc extracts documentation from SandScript source files and
// formats it, along with the native modules, for terminal display.
//
// The extraction rule is simple: consecutive comment lines immediately
// before a method declaration (no blank line gap) are attached as the doc
// comment for that method. The first comment block that is not attached to
// a method, and comes before any code, documents the file.
package doc

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rubiojr/sandscript/ast"
	"github.com/rubiojr/sandscript/diag"
	"github.com/rubiojr/sandscript/interop"
	"github.com/rubiojr/sandscript/parser"
)

// Ext is the file extension of SandScript sources.
const Ext = ".ss"

// FileDoc holds all extracted documentation for a single file.
type FileDoc struct {
	Path    string
	Doc     string // file-level doc
	Methods []MethodDoc
}

// MethodDoc describes a documented top-level method.
type MethodDoc struct {
	Name      string
	Signature string // e.g. "number add(number a, number b)"
	Doc       string
	Line      int
}

// ExtractFile reads a source file and extracts all documentation.
func ExtractFile(path string) (*FileDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Extract(string(data), path), nil
}

// ExtractDir reads every source file in dir (non-recursive, in name order)
// and aggregates their methods. The first file with a file-level doc
// provides the doc.
func ExtractDir(dir string) (*FileDoc, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	result := &FileDoc{Path: dir}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Ext {
			continue
		}
		fd, err := ExtractFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		if result.Doc == "" {
			result.Doc = fd.Doc
		}
		result.Methods = append(result.Methods, fd.Methods...)
	}
	return result, nil
}

// Extract parses src with comments kept and returns its documentation.
// Syntax errors are tolerated; whatever the parser recovered is used.
func Extract(src, path string) *FileDoc {
	fd := &FileDoc{Path: path}
	prog := parser.Parse(path, src, true, diag.NewReport("doc"))

	var block []string
	seenCode := false
	flush := func() {
		if !seenCode && fd.Doc == "" && len(block) > 0 {
			fd.Doc = strings.Join(block, "\n")
		}
		block = nil
	}
	for _, n := range prog.Body {
		switch n := n.(type) {
		case *ast.Comment:
			block = append(block, n.Text)
		case *ast.Whitespace:
			if strings.Count(n.Text, "\n") > 1 {
				flush()
			}
		case *ast.MethodDeclaration:
			fd.Methods = append(fd.Methods, MethodDoc{
				Name:      n.Name,
				Signature: interop.NewScript(n).String(),
				Doc:       strings.Join(block, "\n"),
				Line:      n.Pos().Line,
			})
			block = nil
			seenCode = true
		default:
			flush()
			seenCode = true
		}
	}
	flush()
	return fd
}

// LookupSymbol finds a method by name in a FileDoc.
func LookupSymbol(fd *FileDoc, name string) (doc string, signature string, found bool) {
	for _, m := range fd.Methods {
		if m.Name == name {
			return m.Doc, m.Signature, true
		}
	}
	return "", "", false
}
