package catalog

import "testing"

func TestParseLevel(t *testing.T) {
	for _, l := range AllLevels() {
		got, ok := ParseLevel(string(l))
		if !ok || got != l {
			t.Errorf("ParseLevel(%q) = %q, %v", l, got, ok)
		}
	}
	if _, ok := ParseLevel("expert"); ok {
		t.Error("expected unknown level to fail")
	}
}

func TestUnitLabel(t *testing.T) {
	if got := LevelBeginner.UnitLabel(); got != "Unit" {
		t.Errorf("beginner label = %q, want Unit", got)
	}
	if got := LevelAdvanced.UnitLabel(); got != "Phase" {
		t.Errorf("advanced label = %q, want Phase", got)
	}
}

func TestNextLevel(t *testing.T) {
	if next, ok := LevelBeginner.Next(); !ok || next != LevelStandard {
		t.Errorf("beginner next = %q, %v", next, ok)
	}
	if _, ok := LevelAdvanced.Next(); ok {
		t.Error("advanced should have no next level")
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{50, "about 50 min"},
		{300, "about 5 hr"},
		{250, "about 4 hr 10 min"},
		{0, "about 0 min"},
	}
	for _, tt := range tests {
		if got := FormatMinutes(tt.minutes); got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestTotalDuration(t *testing.T) {
	c := MustDefault()
	if got := c.TotalDuration(LevelBeginner); got != "about 50 min" {
		t.Errorf("beginner duration = %q, want about 50 min", got)
	}
	if got := c.TotalDuration(LevelStandard); got != "about 5 hr" {
		t.Errorf("standard duration = %q, want about 5 hr", got)
	}
}

func TestLessonMinutes(t *testing.T) {
	tests := []struct {
		label string
		want  int
		ok    bool
	}{
		{"15 min", 15, true},
		{" 5 min ", 5, true},
		{"soon", 0, false},
		{"1 hr 20 min", 0, false},
		{"15-20 min", 0, false},
		{"20min", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLessonMinutes(tt.label)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLessonMinutes(%q) = %d, %v; want %d, %v", tt.label, got, ok, tt.want, tt.ok)
		}
		if LessonMinutes(tt.label) != tt.want {
			t.Errorf("LessonMinutes(%q) = %d, want %d", tt.label, LessonMinutes(tt.label), tt.want)
		}
	}
}
