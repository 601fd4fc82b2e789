package export

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PageLayout is the geometry of a rendered page.
type PageLayout struct {
	Width      int
	Height     int
	Margin     int
	LineHeight int
}

// DefaultPageLayout is roughly A4 at 100 dpi.
func DefaultPageLayout() PageLayout {
	return PageLayout{Width: 827, Height: 1169, Margin: 48, LineHeight: 18}
}

func (l PageLayout) charsPerLine() int {
	n := (l.Width - 2*l.Margin) / basicfont.Face7x13.Advance
	return max(n, 1)
}

func (l PageLayout) linesPerPage() int {
	n := (l.Height - 2*l.Margin) / l.LineHeight
	return max(n, 1)
}

// RenderPages wraps text to the page width and draws it onto as many white
// pages as needed, returning each page PNG-encoded.
func RenderPages(text string, layout PageLayout) ([][]byte, error) {
	lines := Wrap(text, layout.charsPerLine())
	perPage := layout.linesPerPage()

	var pages [][]byte
	for start := 0; start < len(lines) || start == 0; start += perPage {
		end := min(start+perPage, len(lines))
		page, err := renderPage(lines[start:end], layout)
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", len(pages)+1, err)
		}
		pages = append(pages, page)
		if end >= len(lines) {
			break
		}
	}
	return pages, nil
}

func renderPage(lines []string, layout PageLayout) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, layout.Width, layout.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: basicfont.Face7x13,
	}
	for i, line := range lines {
		baseline := layout.Margin + (i+1)*layout.LineHeight
		d.Dot = fixed.P(layout.Margin, baseline)
		d.DrawString(line)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Wrap splits text into lines of at most width runes, breaking on spaces.
// Existing line breaks are kept and words longer than width are cut.
func Wrap(text string, width int) []string {
	var out []string
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		indent := para[:len(para)-len(strings.TrimLeft(para, " "))]
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}

		line := indent
		for _, w := range words {
			for len([]rune(w)) > width {
				if strings.TrimSpace(line) != "" {
					out = append(out, line)
					line = ""
				}
				r := []rune(w)
				out = append(out, string(r[:width]))
				w = string(r[width:])
			}
			switch {
			case strings.TrimSpace(line) == "":
				line += w
			case len([]rune(line))+1+len([]rune(w)) <= width:
				line += " " + w
			default:
				out = append(out, line)
				line = w
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
