// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pivotgrid/snapshot/snapshot.go
// Summary: Rasterizes a sheet frame to an image with gg.
//
// Snapshots use the pixel layout: canvas units are pixels. They show the same
// frame the terminal renderer draws, so a replayed gesture can be inspected
// after the fact.

package snapshot

import (
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/framegrace/texelgrid/apps/pivotgrid/brush"
	"github.com/framegrace/texelgrid/apps/pivotgrid/sheet"
)

// Options controls colours and text size.
type Options struct {
	// Colors is keyed like the "colors" config section. Missing keys use
	// the built-in palette.
	Colors   map[string]tcell.Color
	FontSize float64
	// NoText skips glyph rendering.
	NoText bool
}

var defaultColors = map[string]string{
	"background":   "#1e1e2e",
	"header_bg":    "#313244",
	"header_fg":    "#cdd6f4",
	"cell_fg":      "#cdd6f4",
	"empty_fg":     "#6c7086",
	"hover_bg":     "#45475a",
	"prepare_bg":   "#585b70",
	"selected_bg":  "#1e66f5",
	"selected_fg":  "#eff1f5",
	"mask_bg":      "#7f849c",
	"status_bg":    "#181825",
	"scrollbar_fg": "#9399b2",
	"grid_line":    "#45475a",
}

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
	fontErr    error
)

func loadFont() (*text.FontSource, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewFontSource(goregular.TTF)
	})
	return fontSource, fontErr
}

type palette map[string]gg.RGBA

func newPalette(colors map[string]tcell.Color) palette {
	p := make(palette, len(defaultColors))
	for key, hex := range defaultColors {
		p[key] = gg.Hex(hex)
		if c, ok := colors[key]; ok && c != tcell.ColorDefault && c.Valid() {
			r, g, b := c.RGB()
			if r >= 0 {
				p[key] = gg.RGB(float64(r)/255, float64(g)/255, float64(b)/255)
			}
		}
	}
	return p
}

// flushGPU finishes pending accelerated drawing before the pixels are read.
var flushGPU = (*gg.Context).FlushGPU

// Render draws the visible part of s.
func Render(s *sheet.Sheet, opts Options) (image.Image, error) {
	dc, err := draw(s, opts)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	if err := flushGPU(dc); err != nil {
		return nil, fmt.Errorf("flush snapshot: %w", err)
	}
	return dc.Image(), nil
}

// Encode writes the snapshot as PNG.
func Encode(w io.Writer, s *sheet.Sheet, opts Options) error {
	dc, err := draw(s, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}

// SavePNG writes the snapshot to path.
func SavePNG(path string, s *sheet.Sheet, opts Options) error {
	dc, err := draw(s, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func draw(s *sheet.Sheet, opts Options) (*gg.Context, error) {
	l := s.Layout()
	w, h := int(l.Width), int(l.Height)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("snapshot: empty canvas %dx%d", w, h)
	}
	size := opts.FontSize
	if size <= 0 {
		size = 12
	}

	dc := gg.NewContext(w, h)
	pal := newPalette(opts.Colors)
	dc.ClearWithColor(pal["background"])

	r := &renderer{dc: dc, pal: pal}
	if !opts.NoText {
		src, err := loadFont()
		if err != nil {
			dc.Close()
			return nil, fmt.Errorf("load font: %w", err)
		}
		dc.SetFont(src.Face(size))
		r.text = true
	}
	r.frame(s.Frame())
	return dc, nil
}

type renderer struct {
	dc   *gg.Context
	pal  palette
	text bool
}

func (r *renderer) frame(f sheet.Frame) {
	r.box(f.Corner, "header_bg", "header_fg", false)
	for _, b := range f.ColHeaders {
		r.box(b, "header_bg", "header_fg", false)
	}
	for _, b := range f.RowHeaders {
		r.box(b, "header_bg", "header_fg", false)
	}

	for _, c := range f.Cells {
		bg, fg := "background", "cell_fg"
		switch c.State {
		case sheet.CellSelected:
			bg, fg = "selected_bg", "selected_fg"
		case sheet.CellPrepare:
			bg = "prepare_bg"
		case sheet.CellHover:
			bg = "hover_bg"
		case sheet.CellEmpty:
			fg = "empty_fg"
		}
		r.box(c.Box, bg, fg, true)
	}

	if f.Mask != nil {
		m := r.pal["mask_bg"]
		m.A = 0.25
		r.fill(*f.Mask, m)
		r.setColor(r.pal["mask_bg"])
		r.dc.SetLineWidth(1)
		r.dc.DrawRectangle(f.Mask.X+0.5, f.Mask.Y+0.5, f.Mask.Width-1, f.Mask.Height-1)
		_ = r.dc.Stroke()
	}

	if f.Scrollbar != nil {
		r.fill(f.Scrollbar.Track, r.pal["status_bg"])
		r.fill(f.Scrollbar.Thumb, r.pal["scrollbar_fg"])
	}
}

func (r *renderer) setColor(c gg.RGBA) {
	r.dc.SetRGBA(c.R, c.G, c.B, c.A)
}

func (r *renderer) fill(rect brush.Rect, c gg.RGBA) {
	r.setColor(c)
	r.dc.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
	_ = r.dc.Fill()
}

func (r *renderer) box(b sheet.Box, bg, fg string, alignRight bool) {
	if b.Rect.Width <= 0 || b.Rect.Height <= 0 {
		return
	}
	r.fill(b.Rect, r.pal[bg])

	// Grid line along the right and bottom edges.
	r.setColor(r.pal["grid_line"])
	r.dc.SetLineWidth(1)
	right := b.Rect.X + b.Rect.Width - 0.5
	bottom := b.Rect.Y + b.Rect.Height - 0.5
	r.dc.DrawLine(right, b.Rect.Y, right, bottom)
	r.dc.DrawLine(b.Rect.X, bottom, right, bottom)
	_ = r.dc.Stroke()

	if !r.text || b.Text == "" {
		return
	}
	const pad = 4
	r.setColor(r.pal[fg])
	lines := []string{b.Text}
	if b.Sub != "" {
		lines = append(lines, b.Sub)
	}
	lineHeight := b.Rect.Height / float64(len(lines))
	for i, s := range lines {
		s = r.fit(s, b.Rect.Width-2*pad)
		if s == "" {
			continue
		}
		y := b.Rect.Y + lineHeight*float64(i) + lineHeight/2
		if alignRight {
			r.dc.DrawStringAnchored(s, b.Rect.X+b.Rect.Width-pad, y, 1, 0.35)
		} else {
			r.dc.DrawStringAnchored(s, b.Rect.X+pad, y, 0, 0.35)
		}
	}
}

// fit shortens s with an ellipsis until it is at most width pixels wide.
func (r *renderer) fit(s string, width float64) string {
	if width <= 0 {
		return ""
	}
	if w, _ := r.dc.MeasureString(s); w <= width {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		t := string(runes[:n]) + "…"
		if w, _ := r.dc.MeasureString(t); w <= width {
			return t
		}
	}
	return ""
}
