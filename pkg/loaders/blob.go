package loaders

import (
	"context"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob" // mem:// buckets
)

// OpenLocation opens the bucket holding location and returns the key of the
// object within it. Locations are plain filesystem paths, file:// URLs, or
// bucket URLs such as gs://bucket/dir/name.png. Local directories must
// already exist.
func OpenLocation(ctx context.Context, location string) (*blob.Bucket, string, error) {
	return openLocation(ctx, location, false)
}

// CreateLocation is OpenLocation for writing: missing local directories are
// created.
func CreateLocation(ctx context.Context, location string) (*blob.Bucket, string, error) {
	return openLocation(ctx, location, true)
}

func openLocation(ctx context.Context, location string, create bool) (*blob.Bucket, string, error) {
	if location == "" {
		return nil, "", errors.New("empty location")
	}

	if !strings.Contains(location, "://") {
		return openLocalPath(location, create)
	}

	u, err := url.Parse(location)
	if err != nil {
		return nil, "", errors.Wrapf(err, "parsing location %q", location)
	}
	if u.Scheme == "file" {
		return openLocalPath(filepath.FromSlash(u.Path), create)
	}

	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return nil, "", errors.Errorf("location %q has no object key", location)
	}
	bucketURL := u.Scheme + "://" + u.Host
	if u.RawQuery != "" {
		bucketURL += "?" + u.RawQuery
	}

	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, "", errors.Wrapf(err, "opening bucket %q", bucketURL)
	}
	return bucket, key, nil
}

// openLocalPath opens the directory holding path as a bucket. Metadata is
// never written, so only the object itself lands on disk.
func openLocalPath(path string, create bool) (*blob.Bucket, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", errors.Wrapf(err, "resolving path %q", path)
	}
	bucket, err := fileblob.OpenBucket(filepath.Dir(abs), &fileblob.Options{
		CreateDir: create,
		Metadata:  fileblob.MetadataDontWrite,
	})
	if err != nil {
		return nil, "", errors.Wrapf(err, "opening directory %q", filepath.Dir(abs))
	}
	return bucket, filepath.Base(abs), nil
}

// ReadAll reads the whole object at location
func ReadAll(ctx context.Context, location string) ([]byte, error) {
	bucket, key, err := OpenLocation(ctx, location)
	if err != nil {
		return nil, err
	}
	defer bucket.Close()

	data, err := bucket.ReadAll(ctx, key)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", location)
	}
	return data, nil
}

// ResolveRelative resolves ref against the directory holding base. Absolute
// paths and URLs are returned unchanged.
func ResolveRelative(base, ref string) string {
	if ref == "" || strings.Contains(ref, "://") || filepath.IsAbs(ref) {
		return ref
	}
	if !strings.Contains(base, "://") {
		return filepath.Join(filepath.Dir(base), ref)
	}
	u, err := url.Parse(base)
	if err != nil {
		return ref
	}
	u.Path = path.Join(path.Dir(u.Path), filepath.ToSlash(ref))
	return u.String()
}
