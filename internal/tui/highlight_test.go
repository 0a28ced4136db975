package tui

import "testing"

func TestBuildStyledRunesClasses(t *testing.T) {
	runes := buildStyledRunes("a1! B")
	if len(runes) != 5 {
		t.Fatalf("expected 5 runes, got %d", len(runes))
	}
	if runes[0].s != letterStyle.Render("a") {
		t.Fatalf("expected letter style for first rune")
	}
	if runes[1].s != digitStyle.Render("1") {
		t.Fatalf("expected digit style for second rune")
	}
	if runes[2].s != specialStyle.Render("!") {
		t.Fatalf("expected special style for third rune")
	}
	if !runes[3].isSpace {
		t.Fatalf("expected space to be marked")
	}
	if runes[4].s != letterStyle.Render("B") {
		t.Fatalf("expected letter style for uppercase rune")
	}
}

func TestWrapBreaksBetweenPasswords(t *testing.T) {
	out := renderPasswords([]string{"abc", "def"}, 5)
	want := renderStyledRunes(buildStyledRunes("abc")) + "\n" + renderStyledRunes(buildStyledRunes("def"))
	if out != want {
		t.Fatalf("unexpected wrap: %q", out)
	}
}

func TestWrapSplitsLongPassword(t *testing.T) {
	out := renderPasswords([]string{"abcdef"}, 4)
	want := renderStyledRunes(buildStyledRunes("abcd")) + "\n" + renderStyledRunes(buildStyledRunes("ef"))
	if out != want {
		t.Fatalf("unexpected wrap: %q", out)
	}
}

func TestWrapWithoutWidth(t *testing.T) {
	out := renderPasswords([]string{"ab", "cd"}, 0)
	if out != renderStyledRunes(buildStyledRunes("ab cd")) {
		t.Fatalf("expected unwrapped output, got %q", out)
	}
}

func TestWrapExactWidthPasswords(t *testing.T) {
	out := renderPasswords([]string{"abcd", "efgh"}, 4)
	want := renderStyledRunes(buildStyledRunes("abcd")) + "\n" + renderStyledRunes(buildStyledRunes("efgh"))
	if out != want {
		t.Fatalf("unexpected wrap: %q", out)
	}
}
