package parbst

import (
	"go/doc/comment"
	"go/parser"
	"go/token"
	"testing"
)

func TestPackageDocHasLicenseHeadingOnly(t *testing.T) {
	for _, path := range []string{"doc.go", "scramble/scramble.go", "cmd/bstbuild/main.go"} {
		f, err := parser.ParseFile(token.NewFileSet(), path, nil, parser.PackageClauseOnly|parser.ParseComments)
		if err != nil {
			t.Fatal(err)
		}
		if f.Doc == nil {
			t.Fatalf("%s: no package documentation", path)
		}
		var p comment.Parser
		var headings []string
		for _, block := range p.Parse(f.Doc.Text()).Content {
			if h, ok := block.(*comment.Heading); ok {
				headings = append(headings, plain(h.Text))
			}
		}
		// gofmt turns any other heading-like line into a "# " heading
		if len(headings) != 1 || headings[0] != "BSD 3-Clause License" {
			t.Errorf("%s: doc comment has headings %q", path, headings)
		}
	}
}

func plain(text []comment.Text) string {
	s := ""
	for _, t := range text {
		if p, ok := t.(comment.Plain); ok {
			s += string(p)
		}
	}
	return s
}
