package main

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseGridPadsRows(t *testing.T) {
	g, err := ParseGrid(strings.NewReader("S..\n.K\r\n\nB"), '.')
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if g.Height() != 4 {
		t.Fatalf("expected 4 rows, got %d", g.Height())
	}
	if g.Width != 3 {
		t.Fatalf("expected width 3, got %d", g.Width)
	}
	want := []string{"S..", ".K.", "...", "B.."}
	for i, row := range g.Rows {
		if string(row) != want[i] {
			t.Errorf("row %d: expected %q, got %q", i, want[i], string(row))
		}
	}
}

func TestParseGridEmpty(t *testing.T) {
	g, err := ParseGrid(strings.NewReader(""), '.')
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if g.Height() != 0 || g.Width != 0 {
		t.Errorf("expected empty grid, got %dx%d", g.Height(), g.Width)
	}
}

func TestGridInBounds(t *testing.T) {
	g := GridFromStrings('.', "ab", "c")
	if !g.InBounds(1, 1) {
		t.Error("(1,1) should be in bounds after padding")
	}
	if g.At(1, 1) != '.' {
		t.Errorf("expected pad rune, got %q", g.At(1, 1))
	}
	if g.InBounds(2, 0) || g.InBounds(0, 2) || g.InBounds(-1, 0) {
		t.Error("out of range cells reported in bounds")
	}
}

func TestLoadGridMissingFile(t *testing.T) {
	_, err := LoadGrid(filepath.Join(t.TempDir(), "nope.txt"), '.')
	if err == nil {
		t.Fatal("expected error for a missing level file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist in chain, got %v", err)
	}
}
