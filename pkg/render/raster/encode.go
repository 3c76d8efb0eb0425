package raster

import (
	"bytes"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"

	"github.com/jung-kurt/gofpdf"

	"github.com/timeless-residents/handson-drawio-api/pkg/errors"
	"github.com/timeless-residents/handson-drawio-api/pkg/style"
)

// DefaultJPEGQuality is used for every JPEG export.
const DefaultJPEGQuality = 90

// ToJPEG flattens a PNG onto background (white when empty or invalid) and
// re-encodes it as JPEG.
func ToJPEG(pngData []byte, background string, quality int) ([]byte, error) {
	src, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "decode png")
	}

	bg, err := style.RGBA(style.ResolveColor(background, "white"))
	if err != nil || bg.A == 0 {
		bg, _ = style.RGBA("white")
	}
	bg.A = 255

	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encode jpeg")
	}
	return buf.Bytes(), nil
}

// PNGToPDF places a PNG on a single page of the same size. scale is the
// pixel density the PNG was painted at, so the page keeps the diagram's
// size in points.
func PNGToPDF(pngData []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(pngData))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "decode png")
	}
	w := float64(cfg.Width) / scale
	h := float64(cfg.Height) / scale

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})

	opt := gofpdf.ImageOptions{ImageType: "png"}
	pdf.RegisterImageOptionsReader("diagram", opt, bytes.NewReader(pngData))
	pdf.ImageOptions("diagram", 0, 0, w, h, false, opt, 0, "")
	if pdf.Err() {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, pdf.Error(), "build pdf")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "write pdf")
	}
	return buf.Bytes(), nil
}
