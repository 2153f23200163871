package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/cliptower/pkg/errors"
)

// Format is an output format.
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat maps a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatDOT, FormatSVG, FormatPNG:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown render format %q (want dot, svg or png)", s)
}

// Render lays out DOT source with Graphviz. FormatDOT returns src unchanged.
func Render(ctx context.Context, src string, f Format) ([]byte, error) {
	var gf graphviz.Format
	switch f {
	case FormatDOT:
		return []byte(src), nil
	case FormatSVG:
		gf = graphviz.SVG
	case FormatPNG:
		gf = graphviz.PNG
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "render format %q", f)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(src))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gf, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", f)
	}
	if f == FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

// RenderSVG is Render with FormatSVG.
func RenderSVG(ctx context.Context, src string) ([]byte, error) {
	return Render(ctx, src, FormatSVG)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales from a zero
// origin in browsers.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
