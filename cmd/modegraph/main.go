// modegraph emits the blade's mode graph as Graphviz DOT by reading the
// transition registrations straight out of the source, so the diagram can
// never drift from the code. Pipe it into dot:
//
//	go run ./cmd/modegraph | dot -Tpng -o modes.png
package main

import (
	"flag"
	"fmt"
	"go/ast"
	"log"
	"os"
	"strings"

	"golang.org/x/tools/go/packages"
)

const graphPkg = "github.com/milk9111/relicblade/ecs/system"

type edge struct {
	from      []string
	to        string
	universal bool
}

func main() {
	fn := flag.String("func", "NewBladeEngine", "graph constructor to scan")
	flag.Parse()

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
	}
	pkgs, err := packages.Load(cfg, graphPkg)
	if err != nil {
		log.Fatal(err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		os.Exit(1)
	}

	var edges []edge
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			edges = append(edges, scanFile(file, *fn)...)
		}
	}
	if len(edges) == 0 {
		log.Fatalf("no transitions found in %s", *fn)
	}

	writeDOT(os.Stdout, edges)
}

func scanFile(file *ast.File, fn string) []edge {
	var edges []edge
	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Name.Name != fn {
			continue
		}
		ast.Inspect(fd.Body, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok || sel.Sel.Name != "AddTransition" || len(call.Args) != 1 {
				return true
			}
			lit, ok := call.Args[0].(*ast.CompositeLit)
			if !ok {
				return true
			}
			if e, ok := parseTransition(lit); ok {
				edges = append(edges, e)
			}
			return true
		})
	}
	return edges
}

func parseTransition(lit *ast.CompositeLit) (edge, bool) {
	var e edge
	for _, elt := range lit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			continue
		}
		key, ok := kv.Key.(*ast.Ident)
		if !ok {
			continue
		}
		switch key.Name {
		case "From":
			e.from, e.universal = parseFrom(kv.Value)
		case "To":
			e.to = modeLabel(kv.Value)
		}
	}
	if e.to == "" || (len(e.from) == 0 && !e.universal) {
		return edge{}, false
	}
	return e, true
}

// parseFrom handles the two shapes the graph uses: fsm.Any and
// fsm.ClassOf(component.ModeX, ...).
func parseFrom(expr ast.Expr) (froms []string, universal bool) {
	switch v := expr.(type) {
	case *ast.SelectorExpr:
		if v.Sel.Name == "Any" {
			return nil, true
		}
	case *ast.CallExpr:
		for _, arg := range v.Args {
			froms = append(froms, modeLabel(arg))
		}
	}
	return froms, false
}

func modeLabel(expr ast.Expr) string {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok {
		return ""
	}
	name := sel.Sel.Name
	switch name {
	case "ToPrevious":
		return "(previous)"
	case "KindNone":
		return "(previous)"
	}
	return strings.TrimPrefix(name, "Mode")
}

func writeDOT(w *os.File, edges []edge) {
	fmt.Fprintln(w, "digraph modes {")
	fmt.Fprintln(w, "\trankdir=LR;")
	fmt.Fprintln(w, "\tnode [shape=box, fontname=\"monospace\"];")
	fmt.Fprintln(w, "\t\"(previous)\" [shape=ellipse, style=dashed];")
	for _, e := range edges {
		if e.universal {
			fmt.Fprintf(w, "\t\"(any)\" -> %q [style=dashed];\n", e.to)
			continue
		}
		for _, from := range e.from {
			fmt.Fprintf(w, "\t%q -> %q;\n", from, e.to)
		}
	}
	fmt.Fprintln(w, "}")
}
