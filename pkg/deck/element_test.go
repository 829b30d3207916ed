package deck

import "testing"

func TestClasses(t *testing.T) {
	e := NewElement("div").AddClass("a").AddClass("b").AddClass("a")
	if got, _ := e.Attr("class"); got != "a b" {
		t.Errorf("Expected class attr 'a b', got %q", got)
	}
	e.RemoveClass("a")
	if e.HasClass("a") || !e.HasClass("b") {
		t.Errorf("Unexpected classes %v", e.Classes())
	}
	e.SetAttr("class", "x  y")
	if len(e.Classes()) != 2 || !e.HasClass("y") {
		t.Errorf("Expected SetAttr class to replace list, got %v", e.Classes())
	}
}

func TestTreeOperations(t *testing.T) {
	doc := NewDocument("t")
	a := NewElement("section")
	b := NewElement("section")
	doc.Container.Append(a, b)

	nav := NewElement("nav")
	doc.Container.InsertAfter(nav)
	kids := doc.Body.Children()
	if len(kids) != 2 || kids[1] != nav {
		t.Fatalf("Expected nav after container, got %d children", len(kids))
	}

	nav.Remove()
	if len(doc.Body.Children()) != 1 || nav.Parent() != nil {
		t.Error("Expected nav to be detached")
	}

	doc.Container.Append(a)
	if n := len(doc.Container.Children()); n != 2 {
		t.Errorf("Expected re-append to move, not duplicate; got %d children", n)
	}

	doc.Container.Empty()
	if len(doc.Container.Children()) != 0 {
		t.Error("Expected Empty to drop all children")
	}
}

func TestDataAndStyle(t *testing.T) {
	e := NewElement("section")
	e.SetData("n", 3.0).SetData("s", "x")
	if got := e.DataString("n"); got != "3" {
		t.Errorf("Expected integral float to stringify as 3, got %q", got)
	}
	e.RemoveData("s")
	if _, ok := e.Data("s"); ok {
		t.Error("Expected data removed")
	}

	e.SetStyle("top", "100%")
	if v, ok := e.Style("top"); !ok || v != "100%" {
		t.Errorf("Expected top 100%%, got %q", v)
	}
	e.ClearStyle()
	if e.HasStyle() {
		t.Error("Expected style cleared")
	}
}

func TestFind(t *testing.T) {
	doc, err := Parse("t.md", []byte("# One {#first .x}\n\ntext *em*\n\n---\n\n## Two {.x}\n"))
	if err != nil {
		t.Fatal(err)
	}
	c := doc.Container

	tests := []struct {
		sel  string
		want int
	}{
		{"> *", 2},
		{"*", 2 + 1 + 1 + 1 + 1}, // sections, h1, p, em, h2
		{"> section", 2},
		{".x", 2},
		{"section.x", 2},
		{"#first", 1},
		{"h1", 1},
		{"> h1", 0},
		{"div p", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := len(c.Find(tt.sel)); got != tt.want {
			t.Errorf("Find(%q): expected %d, got %d", tt.sel, tt.want, got)
		}
	}

	if c.First("em").TextContent() != "em" {
		t.Error("Expected em text")
	}
	if c.First("table") != nil {
		t.Error("Expected nil for no match")
	}
}
