// Package barcode turns barcode field values into self-contained image
// sources. The renderer only emits references, never raster bytes, so the
// QR matrix is encoded as a PNG data URL that any downstream rasterizer can
// resolve without touching the filesystem.
package barcode

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/yeqown/go-qrcode/v2"
)

// DefaultPixels is the edge length used when the caller does not size the
// barcode explicitly.
const DefaultPixels = 256

// DataURL encodes content as a QR code and returns it as a PNG data URL of
// roughly sizePx pixels per side.
func DataURL(content string, sizePx int) (string, error) {
	if content == "" {
		return "", errors.New("barcode: content is empty")
	}
	if sizePx <= 0 {
		sizePx = DefaultPixels
	}

	qrc, err := qrcode.NewWith(content, qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart))
	if err != nil {
		return "", fmt.Errorf("barcode: encode: %w", err)
	}

	w := &pngWriter{target: sizePx}
	if err := qrc.Save(w); err != nil {
		return "", fmt.Errorf("barcode: render: %w", err)
	}
	return w.dataURL, nil
}

// pngWriter implements qrcode.Writer, drawing the matrix into an RGBA image
// and capturing the encoded result.
type pngWriter struct {
	target  int
	dataURL string
}

func (w *pngWriter) Write(mat qrcode.Matrix) error {
	modules := mat.Width()
	if modules <= 0 {
		return errors.New("barcode: empty matrix")
	}
	scale := w.target / modules
	if scale < 1 {
		scale = 1
	}
	side := modules * scale

	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for i := 0; i < side*side; i++ {
		img.Pix[i*4+0] = 0xff
		img.Pix[i*4+1] = 0xff
		img.Pix[i*4+2] = 0xff
		img.Pix[i*4+3] = 0xff
	}

	mat.Iterate(qrcode.IterDirection_COLUMN, func(x int, y int, v qrcode.QRValue) {
		if !v.IsSet() {
			return
		}
		for dy := 0; dy < scale; dy++ {
			for dx := 0; dx < scale; dx++ {
				img.Set(x*scale+dx, y*scale+dy, color.Black)
			}
		}
	})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	w.dataURL = "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	return nil
}

func (w *pngWriter) Close() error {
	return nil
}
