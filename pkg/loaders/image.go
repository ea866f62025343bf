package loaders

import (
	"context"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"gocloud.dev/blob"
	_ "golang.org/x/image/webp" // WebP decoder
)

// ImageData contains loaded image data as a row-major color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Color // Pixels[y*Width + x]
}

// ImageOptions controls how textures are prepared after decoding
type ImageOptions struct {
	// MaxWidth downscales wider images, keeping the aspect ratio. Zero keeps
	// the original size.
	MaxWidth int
}

// LoadImage loads a PNG, JPEG or WebP image from a path or bucket URL
func LoadImage(ctx context.Context, location string, opts ImageOptions) (*ImageData, error) {
	bucket, key, err := OpenLocation(ctx, location)
	if err != nil {
		return nil, err
	}
	defer bucket.Close()

	return ReadImage(ctx, bucket, key, opts)
}

// ReadImage decodes the image stored under key in bucket
func ReadImage(ctx context.Context, bucket *blob.Bucket, key string, opts ImageOptions) (*ImageData, error) {
	r, err := bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open image %q", key)
	}
	defer r.Close()

	// Decode image (format detected from the header, EXIF orientation applied)
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode image %q", key)
	}

	if opts.MaxWidth > 0 && img.Bounds().Dx() > opts.MaxWidth {
		img = resize.Resize(uint(opts.MaxWidth), 0, img, resize.Bilinear)
	}

	return FromImage(img), nil
}

// FromImage converts a decoded image to a color array
func FromImage(img image.Image) *ImageData {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Color, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewColor(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}
