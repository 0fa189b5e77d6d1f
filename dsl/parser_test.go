package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/justify/dsl"
)

const sampleDSL = `
doc Guide v1 {
  meta {
    title: "Hitchhiker"
    keywords: [
      "galaxy"
      "guide"
    ]
  }

  resources {
    font Body {
      src: "builtin:lmroman10-regular"
    }

    color Ink = #0F62FE
  }

  settings {
    algorithm: knuth-plass
    threshold: inf
    looseness: -1
  }

  page A5 portrait margin 15mm {
    paragraph Body size 10pt color #333 { "Hello, ${user.name}!" }

    items width 20 {
      box 3
      glue 1 1.5 .5
      penalty 0 50 flagged
      penalty 0 -inf
    }
  }
}
`

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if doc.Name != "Guide" {
		t.Fatalf("expected document name Guide, got %s", doc.Name)
	}
	if doc.Version != "v1" {
		t.Fatalf("expected version v1, got %s", doc.Version)
	}

	if len(doc.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(doc.Sections))
	}
	kinds := make([]string, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		kinds = append(kinds, s.Kind())
	}
	if got := strings.Join(kinds, ","); got != "meta,resources,settings,page" {
		t.Fatalf("unexpected section kinds: %s", got)
	}

	meta := doc.Sections[0].Meta
	if meta == nil {
		t.Fatalf("meta section missing")
	}
	title := meta.Block.Statements[0].Assignment
	if title == nil || title.Key != "title" {
		t.Fatalf("expected title assignment, got %+v", meta.Block.Statements[0])
	}
	if got := title.Value.Text(); got != "Hitchhiker" {
		t.Fatalf("expected title Hitchhiker, got %s", got)
	}
	keywords := meta.Block.Statements[1].Assignment
	if keywords == nil || keywords.Value.Array == nil {
		t.Fatalf("expected keywords array assignment")
	}
	if got := strings.Join(keywords.Value.Strings(), ","); got != "galaxy,guide" {
		t.Fatalf("unexpected keywords: %s", got)
	}

	color := doc.Sections[1].Resources.Block.Statements[1].Command
	if color == nil || color.Name != "color" || color.Args[len(color.Args)-1].Value != "#0F62FE" {
		t.Fatalf("unexpected color resource: %+v", doc.Sections[1].Resources.Block.Statements[1])
	}

	settings := doc.Sections[2].Settings
	if settings == nil || len(settings.Block.Statements) != 3 {
		t.Fatalf("settings section missing statements")
	}
	if got := settings.Block.Statements[0].Assignment.Value.Text(); got != "knuth-plass" {
		t.Fatalf("expected algorithm knuth-plass, got %s", got)
	}
	threshold := settings.Block.Statements[1].Assignment.Value
	if threshold.Inf == nil || *threshold.Inf != "inf" {
		t.Fatalf("threshold should parse as infinity, got %+v", threshold)
	}
	looseness := settings.Block.Statements[2].Assignment.Value
	if looseness.Number == nil || *looseness.Number != "-1" {
		t.Fatalf("looseness should parse as a signed number, got %+v", looseness)
	}

	page := doc.Sections[3].Page
	if page.Spec.Size != "A5" {
		t.Fatalf("expected page size A5, got %s", page.Spec.Size)
	}
	if len(page.Spec.Params) != 3 || page.Spec.Params[2].Value != "15mm" {
		t.Fatalf("unexpected page params: %+v", page.Spec.Params)
	}

	para := page.Block.Statements[0].Command
	if para == nil || para.Name != "paragraph" {
		t.Fatalf("expected paragraph command, got %+v", page.Block.Statements[0])
	}
	if len(para.Args) != 5 || para.Args[0].Value != "Body" || para.Args[4].Type != "Color" {
		t.Fatalf("unexpected paragraph args: %+v", para.Args)
	}
	if para.Block == nil || para.Block.Statements[0].Text == nil {
		t.Fatalf("paragraph command missing literal content")
	}
	if got := string(para.Block.Statements[0].Text.Value); !strings.Contains(got, "${user.name}") {
		t.Fatalf("expected interpolation in text literal, got %s", got)
	}

	items := page.Block.Statements[1].Command
	if items == nil || items.Name != "items" || items.Block == nil {
		t.Fatalf("expected items command, got %+v", page.Block.Statements[1])
	}
	var got []string
	for _, st := range items.Block.Statements {
		if st.Command == nil {
			t.Fatalf("items body should only hold commands, got %+v", st)
		}
		got = append(got, st.Command.Name+" "+tokensToString(st.Command.Args))
	}
	want := []string{"box 3", "glue 1 1.5 .5", "penalty 0 50 flagged", "penalty 0 -inf"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected item commands: %q", got)
	}
	last := items.Block.Statements[3].Command.Args[1]
	if last.Type != "Inf" || !last.IsNumeric() {
		t.Fatalf("-inf should lex as Inf, got %+v", last)
	}
}

func TestParseRejectsUnknownSection(t *testing.T) {
	if _, err := dsl.ParseString(`doc X v1 { chapter { } }`); err == nil {
		t.Fatalf("expected an error for an unknown section")
	}
}

func tokensToString(parts []*dsl.Lexeme) string {
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		values = append(values, p.Value)
	}
	return strings.Join(values, " ")
}
