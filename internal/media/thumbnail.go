package media

import (
	"bytes"
	"strings"

	"github.com/disintegration/imaging"
)

const thumbSize = 320

// IsImage reports whether the mime type is one we can thumbnail.
func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// Thumbnail downscales an image attachment to fit a 320px bounding box and
// re-encodes it as JPEG. The caller stores it next to the original.
func Thumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	th := imaging.Fit(img, thumbSize, thumbSize, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, th, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
