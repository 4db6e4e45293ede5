package display

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewTable(t *testing.T) {
	tbl := NewTable([]string{"Prayer", "Time"})
	if tbl == nil {
		t.Fatal("NewTable returned nil")
	}
	if tbl.highlightRow != -1 {
		t.Errorf("highlightRow = %d, want -1", tbl.highlightRow)
	}
}

func TestTable_EmptyHeaders(t *testing.T) {
	if got := NewTable(nil).Render(); got != "" {
		t.Errorf("Render() with no headers = %q, want empty", got)
	}
}

func TestTable_Layout(t *testing.T) {
	SetEnabled(false)

	tbl := NewTable([]string{"Prayer", "Time", ""})
	tbl.AddRow([]string{"Fajr", "05:00", ""})
	tbl.AddRow([]string{"Maghrib", "18:00", "<- next in 2h 0m"})

	got := tbl.Render()
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")

	// header, rule, two rows
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), got)
	}
	for i, l := range lines {
		if !strings.HasPrefix(l, indent) {
			t.Errorf("line %d not indented: %q", i, l)
		}
		if strings.HasSuffix(l, " ") {
			t.Errorf("line %d has trailing spaces: %q", i, l)
		}
	}
	if !strings.Contains(lines[0], "Prayer") || !strings.Contains(lines[0], "Time") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "─") {
		t.Errorf("missing header rule: %q", lines[1])
	}
	if !strings.Contains(lines[3], "Maghrib") || !strings.Contains(lines[3], "<- next in 2h 0m") {
		t.Errorf("row = %q", lines[3])
	}
	if strings.Contains(got, "\033[") {
		t.Error("colors disabled but output has ANSI escapes")
	}
}

func TestTable_ColumnsAligned(t *testing.T) {
	SetEnabled(false)

	tbl := NewTable([]string{"Prayer", "Time"})
	tbl.AddRow([]string{"الفجر", "05:00"})
	tbl.AddRow([]string{"Maghrib", "18:00"})

	lines := strings.Split(tbl.Render(), "\n")
	col := func(line, cell string) int {
		i := strings.Index(line, cell)
		if i < 0 {
			t.Fatalf("%q not in %q", cell, line)
		}
		return lipgloss.Width(line[:i])
	}

	if a, b := col(lines[2], "05:00"), col(lines[3], "18:00"); a != b {
		t.Errorf("time column starts at %d and %d", a, b)
	}
	if h, r := col(lines[0], "Time"), col(lines[3], "18:00"); h != r {
		t.Errorf("header column at %d, row column at %d", h, r)
	}
}

func TestTable_MissingAndExtraCells(t *testing.T) {
	SetEnabled(false)

	tbl := NewTable([]string{"A", "B"})
	tbl.AddRow([]string{"only"})
	tbl.AddRow([]string{"x", "y", "dropped"})

	got := tbl.Render()
	if strings.Contains(got, "dropped") {
		t.Errorf("extra cell rendered:\n%s", got)
	}
	if !strings.Contains(got, "only") {
		t.Errorf("short row missing:\n%s", got)
	}
}

func TestTable_HighlightRow(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)

	tbl := NewTable([]string{"Prayer", "Time"})
	tbl.AddRow([]string{"Fajr", "05:00"})
	tbl.AddRow([]string{"Dhuhr", "12:00"})
	tbl.SetHighlightRow(0)

	lines := strings.Split(tbl.Render(), "\n")
	if len(lines) < 4 {
		t.Fatalf("expected at least 4 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[2], "\033[") {
		t.Error("highlighted row should contain ANSI escape codes")
	}
	if strings.Contains(lines[3], "\033[") {
		t.Error("plain row should not be styled")
	}
}
