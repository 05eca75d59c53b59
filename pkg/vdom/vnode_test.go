package vdom

import "testing"

func TestCreateElement(t *testing.T) {
	n := G(Class("mark", "big"), Key("k1"), Translate(1.5, 0), nil, Circle(R(2)), "label")

	if n.Tag != "g" || n.Kind != KindElement {
		t.Fatalf("got %s %v, want g Element", n.Tag, n.Kind)
	}
	if n.Key != "k1" {
		t.Errorf("Key = %q, want k1", n.Key)
	}
	if _, ok := n.Props["key"]; ok {
		t.Error("key must not be stored as a prop")
	}
	if got := n.Attr("class"); got != "mark big" {
		t.Errorf("class = %q, want %q", got, "mark big")
	}
	if got := n.Attr("transform"); got != "translate(1.5,0)" {
		t.Errorf("transform = %q", got)
	}
	if len(n.Children) != 2 || n.Children[1].Kind != KindText {
		t.Errorf("children = %d, want circle + text", len(n.Children))
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := G(Fill("red"), Circle(R(1)))
	c := orig.Clone()

	c.Set(Fill("blue"))
	c.Children[0].Set(R(5))

	if orig.Attr("fill") != "red" {
		t.Error("clone shares props with original")
	}
	if r, _ := orig.Children[0].Float("r"); r != 1 {
		t.Error("clone shares children with original")
	}
}

func TestFindByClass(t *testing.T) {
	root := G(Class("plot"), G(Class("mark")), G(Class("axis"), G(Class("mark tick"))))

	if got := len(root.FindByClass("mark")); got != 2 {
		t.Errorf("FindByClass = %d, want 2", got)
	}
	if !root.HasClass("plot") || root.HasClass("mark") {
		t.Error("HasClass mismatch")
	}
}

func TestAssignIDsKeepsExisting(t *testing.T) {
	root := G(Circle(), Text("t"))
	root.ID = "keep"
	gen := NewIDGenerator()

	AssignIDs(root, gen)

	if root.ID != "keep" {
		t.Errorf("root ID = %q, want keep", root.ID)
	}
	if root.Children[0].ID != "m1" {
		t.Errorf("child ID = %q, want m1", root.Children[0].ID)
	}
	if root.Children[1].ID != "" {
		t.Error("text nodes should not get IDs")
	}
}

func TestTextContent(t *testing.T) {
	n := SVGText(Text("a"), Fragment("b", Text("3")))
	if got := n.TextContent(); got != "ab3" {
		t.Errorf("TextContent = %q, want ab3", got)
	}
}

func TestViewBox(t *testing.T) {
	if got := SVG(ViewBox(0, 0, 640, 48.5)).Attr("viewBox"); got != "0 0 640 48.5" {
		t.Errorf("viewBox = %q", got)
	}
}
