// Command ecsgen emits an ecs.NewSystem declaration for each function whose
// doc comment carries an "ecs:system" annotation. It is deliberately trivial:
// no reflection happens at runtime, it only saves writing out
// ecs.NewSystem(name, fn, ecs.Reads(...), ecs.Writes(...)) calls by hand,
// per spec.md §9's note that a code-generation layer here should "merely
// construct SystemMeta values... prefer an explicit meta-builder" over
// anything more ambitious.
package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"strings"
)

// annotation describes one "ecs:system" doc comment:
//
//	//ecs:system reads=Position,Velocity writes=Position
//	func MovementSystem(w *ecs.World) error { ... }
type annotation struct {
	funcName string
	reads    []string
	writes   []string
}

func main() {
	in := flag.String("in", "", "Go source file to scan for ecs:system annotations")
	out := flag.String("out", "", "output file (defaults to stdout)")
	pkg := flag.String("pkg", "main", "package name for the generated file")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "ecsgen: -in is required")
		os.Exit(2)
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, *in, nil, parser.ParseComments)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ecsgen: parse %s: %v\n", *in, err)
		os.Exit(1)
	}

	var found []annotation
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Doc == nil {
			continue
		}
		for _, line := range fn.Doc.List {
			ann, ok := parseAnnotation(fn.Name.Name, line.Text)
			if ok {
				found = append(found, ann)
			}
		}
	}

	src := generate(*pkg, found)
	formatted, err := format.Source([]byte(src))
	if err != nil {
		// Emit the unformatted source rather than failing outright; a
		// syntax mistake in a hand-edited annotation shouldn't block the
		// rest of the build from being inspected.
		formatted = []byte(src)
	}

	if *out == "" {
		os.Stdout.Write(formatted)
		return
	}
	if err := os.WriteFile(*out, formatted, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "ecsgen: write %s: %v\n", *out, err)
		os.Exit(1)
	}
}

func parseAnnotation(funcName, commentText string) (annotation, bool) {
	text := strings.TrimPrefix(commentText, "//")
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "ecs:system") {
		return annotation{}, false
	}
	ann := annotation{funcName: funcName}
	fields := strings.Fields(strings.TrimPrefix(text, "ecs:system"))
	for _, field := range fields {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		switch key {
		case "reads":
			ann.reads = strings.Split(value, ",")
		case "writes":
			ann.writes = strings.Split(value, ",")
		}
	}
	return ann, true
}

func generate(pkg string, anns []annotation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by ecsgen; DO NOT EDIT.\n\npackage %s\n\n", pkg)
	if len(anns) == 0 {
		return b.String()
	}
	b.WriteString("import \"github.com/wrenforge/ecsframe\"\n\n")
	for _, ann := range anns {
		fmt.Fprintf(&b, "var %sSystem = ecs.NewSystem(%q, %s,\n", ann.funcName, ann.funcName, ann.funcName)
		for _, r := range ann.reads {
			fmt.Fprintf(&b, "\tecs.Reads(ecs.ComponentIDOf[%s]()),\n", r)
		}
		for _, w := range ann.writes {
			fmt.Fprintf(&b, "\tecs.Writes(ecs.ComponentIDOf[%s]()),\n", w)
		}
		b.WriteString(")\n\n")
	}
	return b.String()
}
