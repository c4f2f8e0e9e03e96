package document

import (
	"reflect"
	"testing"
)

func TestSplitTags(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{"email work", []string{"email", "work"}},
		{"email,work", []string{"email", "work"}},
		{"email, work", []string{"email", "work"}},
		{"  email\twork  ", []string{"email", "work"}},
		{"email,,work,", []string{"email", "work"}},
		{"", []string{}},
		{" , ", []string{}},
		{"single", []string{"single"}},
	}
	for _, c := range cases {
		got := SplitTags(c.raw)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("SplitTags(%q) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestTagRoundTrip(t *testing.T) {
	sequences := [][]string{
		{"email"},
		{"email", "work"},
		{"bank", "card", "visa"},
	}
	for _, tags := range sequences {
		got := SplitTags(JoinTags(tags))
		if !reflect.DeepEqual(got, tags) {
			t.Errorf("SplitTags(JoinTags(%v)) = %v", tags, got)
		}
	}
}

func TestNewEntryAssignsID(t *testing.T) {
	a := NewEntry([]string{"email"}, "p@ss")
	b := NewEntry([]string{"email"}, "p@ss")

	if a.ID == "" {
		t.Fatal("NewEntry returned empty id")
	}
	if a.ID == b.ID {
		t.Fatalf("two entries share id %s", a.ID)
	}
}

func TestDraftAddEntry(t *testing.T) {
	doc := &Document{}
	dr := NewDraft(doc)

	e := dr.AddEntry([]string{"email", "work"}, "p@ss")

	if !dr.Changed() {
		t.Fatal("AddEntry did not mark draft changed")
	}
	if len(doc.Secrets) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(doc.Secrets))
	}
	if doc.Secrets[0].ID != e.ID {
		t.Errorf("stored id %s, returned id %s", doc.Secrets[0].ID, e.ID)
	}
}

func TestDraftUpdateEntryPreservesIdentityAndPosition(t *testing.T) {
	first := NewEntry([]string{"email"}, "a")
	second := NewEntry([]string{"bank"}, "b")
	doc := &Document{Secrets: []Entry{first, second}}
	dr := NewDraft(doc)

	if ok := dr.UpdateEntry(first.ID, []string{"email", "personal"}, "c"); !ok {
		t.Fatal("UpdateEntry reported not found for existing id")
	}

	if doc.Secrets[0].ID != first.ID {
		t.Errorf("id changed from %s to %s", first.ID, doc.Secrets[0].ID)
	}
	if doc.Secrets[0].Secret != "c" {
		t.Errorf("secret not updated: %q", doc.Secrets[0].Secret)
	}
	if doc.Secrets[1].ID != second.ID {
		t.Error("unrelated entry moved")
	}
}

func TestDraftUpdateEntryNotFound(t *testing.T) {
	doc := &Document{Secrets: []Entry{NewEntry([]string{"email"}, "a")}}
	dr := NewDraft(doc)

	if ok := dr.UpdateEntry("no-such-id", []string{"x"}, "y"); ok {
		t.Fatal("UpdateEntry reported success for missing id")
	}
	if dr.Changed() {
		t.Fatal("missing-id update marked draft changed")
	}
	if doc.Secrets[0].Secret != "a" {
		t.Error("missing-id update mutated an entry")
	}
}

func TestDraftRemoveEntry(t *testing.T) {
	e := NewEntry([]string{"email"}, "a")
	doc := &Document{Secrets: []Entry{e}}
	dr := NewDraft(doc)

	if ok := dr.RemoveEntry(e.ID); !ok {
		t.Fatal("RemoveEntry reported not found for existing id")
	}
	if len(doc.Secrets) != 0 {
		t.Fatalf("expected 0 entries, got %d", len(doc.Secrets))
	}

	if ok := dr.RemoveEntry(e.ID); ok {
		t.Fatal("RemoveEntry reported success for already-removed id")
	}
}

func TestDraftNoopUpdateDoesNotMarkChanged(t *testing.T) {
	e := NewEntry([]string{"email"}, "a")
	doc := &Document{Secrets: []Entry{e}}
	dr := NewDraft(doc)

	if ok := dr.UpdateEntry(e.ID, []string{"email"}, "a"); !ok {
		t.Fatal("identical update reported not found")
	}
	if dr.Changed() {
		t.Fatal("identical update marked draft changed")
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc := &Document{Secrets: []Entry{NewEntry([]string{"email"}, "a")}}
	c := doc.Clone()

	c.Secrets[0].Tags[0] = "mutated"
	c.Secrets[0].Secret = "mutated"

	if doc.Secrets[0].Tags[0] != "email" || doc.Secrets[0].Secret != "a" {
		t.Error("mutating the clone changed the original")
	}
}

func TestStampCompare(t *testing.T) {
	cases := []struct {
		a, b Stamp
		want int
	}{
		{Stamp{1, "a"}, Stamp{2, "a"}, -1},
		{Stamp{2, "a"}, Stamp{1, "z"}, 1},
		{Stamp{1, "a"}, Stamp{1, "b"}, -1},
		{Stamp{1, "a"}, Stamp{1, "a"}, 0},
	}
	for _, c := range cases {
		if got := c.a.Compare(c.b); got != c.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
