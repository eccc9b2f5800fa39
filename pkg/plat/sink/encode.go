package sink

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"

	"github.com/matzehuels/trsplat/pkg/errors"
)

// Format is an output file format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatTIFF Format = "tiff"
	FormatPDF  Format = "pdf"
)

// Formats lists the supported formats.
func Formats() []Format { return []Format{FormatPNG, FormatTIFF, FormatPDF} }

// ParseFormat accepts a format name or file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return FormatPNG, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q (use png, tiff or pdf)", s)
}

// FormatFromPath infers the format from a file extension. Paths without a
// known image extension, including ".zip", give PNG.
func FormatFromPath(path string) Format {
	if f, err := ParseFormat(filepath.Ext(path)); err == nil {
		return f
	}
	return FormatPNG
}

// Ext returns the file extension for f, with the dot.
func (f Format) Ext() string {
	if f == FormatTIFF {
		return ".tif"
	}
	return "." + string(f)
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG, "":
		return EncodePNG(w, img)
	case FormatTIFF:
		return EncodeTIFF(w, img)
	case FormatPDF:
		return EncodePDF(w, img)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q", f)
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// EncodeTIFF writes img as a deflate-compressed TIFF.
func EncodeTIFF(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}

// EncodePDF writes img as a one-page PDF the size of the image.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func EncodePDF(w io.Writer, img image.Image) error {
	pdf, err := ToPDF(wrapSVG(img))
	if err != nil {
		return err
	}
	_, err = w.Write(pdf)
	return err
}

// wrapSVG embeds img as a PNG data URI in an SVG of the same size.
func wrapSVG(img image.Image) []byte {
	var raw bytes.Buffer
	_ = png.Encode(&raw, img)
	b := img.Bounds()
	var svg bytes.Buffer
	fmt.Fprintf(&svg, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%d" height="%d" viewBox="0 0 %d %d">`,
		b.Dx(), b.Dy(), b.Dx(), b.Dy())
	fmt.Fprintf(&svg, `<image width="%d" height="%d" xlink:href="data:image/png;base64,%s"/></svg>`,
		b.Dx(), b.Dy(), base64.StdEncoding.EncodeToString(raw.Bytes()))
	return svg.Bytes()
}

// ToPDF converts SVG bytes to PDF using rsvg-convert.
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// rsvgConvert shells out to rsvg-convert for format conversion.
func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command("rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}
