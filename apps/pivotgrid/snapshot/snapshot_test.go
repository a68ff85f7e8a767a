// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pivotgrid/snapshot/snapshot_test.go
// Summary: Snapshot tests: canvas size, cell colours after a brush selection, PNG output.

package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gg"

	"github.com/framegrace/texelgrid/apps/pivotgrid/brush"
	"github.com/framegrace/texelgrid/apps/pivotgrid/sheet"
)

func pixelSheet(t *testing.T) *sheet.Sheet {
	t.Helper()
	ds := &sheet.Dataset{Fields: []string{"region", "month", "sales"}}
	for r := 0; r < 30; r++ {
		for c := 0; c < 10; c++ {
			ds.Records = append(ds.Records, sheet.Record{
				"region": fmt.Sprintf("r%02d", r),
				"month":  fmt.Sprintf("m%02d", c+1),
				"sales":  fmt.Sprintf("%d", r*10+c),
			})
		}
	}
	p, err := sheet.Build(ds, sheet.PivotConfig{
		Rows:    []string{"region"},
		Columns: []string{"month"},
		Values:  []string{"sales"},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return sheet.New(p, sheet.PixelLayout())
}

func rgbAt(img image.Image, x, y int) [3]int {
	r, g, b, _ := img.At(x, y).RGBA()
	return [3]int{int(r >> 8), int(g >> 8), int(b >> 8)}
}

func near(a, b [3]int) bool {
	for i := range a {
		d := a[i] - b[i]
		if d < -1 || d > 1 {
			return false
		}
	}
	return true
}

func TestRender_Size(t *testing.T) {
	img, err := Render(pixelSheet(t), Options{})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 480 {
		t.Errorf("unexpected bounds %v", b)
	}
}

func TestRender_SelectedCellsUseSelectionColour(t *testing.T) {
	s := pixelSheet(t)
	e := brush.NewEngine(s, brush.DefaultConfig())
	e.Handle(brush.PointerDown{Point: brush.Point{X: 150, Y: 60}})  // row 0, col 0
	e.Handle(brush.PointerMove{Point: brush.Point{X: 350, Y: 110}}) // row 2, col 2
	e.Handle(brush.PointerUp{Point: brush.Point{X: 350, Y: 110}})
	if len(e.Selection()) != 9 {
		t.Fatalf("expected 9 selected cells, got %d", len(e.Selection()))
	}

	img, err := Render(s, Options{NoText: true})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	selected := [3]int{0x1e, 0x66, 0xf5}
	background := [3]int{0x1e, 0x1e, 0x2e}
	if got := rgbAt(img, 245, 75); !near(got, selected) { // row 1, col 1
		t.Errorf("selected cell colour = %v, want %v", got, selected)
	}
	if got := rgbAt(img, 565, 205); !near(got, background) { // row 6, col 4
		t.Errorf("unselected cell colour = %v, want %v", got, background)
	}
}

func TestRender_CustomColors(t *testing.T) {
	img, err := Render(pixelSheet(t), Options{
		NoText: true,
		Colors: map[string]tcell.Color{"background": tcell.GetColor("#102030")},
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got := rgbAt(img, 565, 205); !near(got, [3]int{0x10, 0x20, 0x30}) {
		t.Errorf("custom background not applied: %v", got)
	}
}

func TestEncodeAndSavePNG(t *testing.T) {
	s := pixelSheet(t)

	var buf bytes.Buffer
	if err := Encode(&buf, s, Options{}); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}

	path := filepath.Join(t.TempDir(), "grid.png")
	if err := SavePNG(path, s, Options{}); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("snapshot not written: %v", err)
	}
}

func TestRender_EmptyCanvas(t *testing.T) {
	s := pixelSheet(t)
	s.Resize(0, 0)
	if _, err := Render(s, Options{}); err == nil {
		t.Fatal("expected an error for an empty canvas")
	}
}

func TestRender_FlushErrorReturned(t *testing.T) {
	lost := errors.New("device lost")
	orig := flushGPU
	flushGPU = func(*gg.Context) error { return lost }
	t.Cleanup(func() { flushGPU = orig })

	img, err := Render(pixelSheet(t), Options{NoText: true})
	if !errors.Is(err, lost) {
		t.Fatalf("expected the flush error, got %v", err)
	}
	if img != nil {
		t.Error("expected no image when the flush fails")
	}
}
