package images

import (
	"bytes"
	"image"
	"image/jpeg"
)

// EncodeJPEG encodes img for embedding into the output document.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
