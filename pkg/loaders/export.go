package loaders

import (
	"context"
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"gocloud.dev/blob"
)

// WriteImage encodes img as PNG to a path or bucket URL, creating missing
// local directories
func WriteImage(ctx context.Context, location string, img image.Image) error {
	bucket, key, err := CreateLocation(ctx, location)
	if err != nil {
		return err
	}
	defer bucket.Close()

	return WriteImageTo(ctx, bucket, key, img)
}

// WriteImageTo encodes img as PNG under key in bucket
func WriteImageTo(ctx context.Context, bucket *blob.Bucket, key string, img image.Image) error {
	w, err := bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: "image/png"})
	if err != nil {
		return errors.Wrapf(err, "failed to create %q", key)
	}

	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		w.Close()
		return errors.Wrapf(err, "failed to encode %q", key)
	}

	// The object is only committed on Close
	if err := w.Close(); err != nil {
		return errors.Wrapf(err, "failed to write %q", key)
	}
	return nil
}
