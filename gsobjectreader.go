package mirreport

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// GSObjectReader decorates a Google Storage object reader so that closing it
// also releases the client that produced it.
type GSObjectReader struct {
	*storage.Reader
	close *func() error
}

// Close satisfies io.Closer. If o.close is not set, only the object reader is
// closed.
func (o GSObjectReader) Close() error {
	err := o.Reader.Close()
	if o.close != nil {
		if cerr := (*o.close)(); err == nil {
			err = cerr
		}
	}

	return err
}

// SplitGSURL separates gs://bucket/path/to/object into bucket and object
// path.
func SplitGSURL(url string) (bucket, object string, err error) {
	if !strings.HasPrefix(url, "gs://") {
		return "", "", fmt.Errorf("%s is not a gs:// URL", url)
	}

	parts := strings.SplitN(strings.TrimPrefix(url, "gs://"), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%s does not name a bucket and an object", url)
	}

	return parts[0], parts[1], nil
}

// openGS opens a gs:// object for streaming. If client is nil, a client is
// created with ambient credentials and closed with the returned reader.
func openGS(ctx context.Context, client *storage.Client, url string) (io.ReadCloser, error) {
	bucket, object, err := SplitGSURL(url)
	if err != nil {
		return nil, pfx.Err(err)
	}

	var closer *func() error
	if client == nil {
		client, err = storage.NewClient(ctx)
		if err != nil {
			return nil, pfx.Err(err)
		}
		f := client.Close
		closer = &f
	}

	rdr, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		if closer != nil {
			(*closer)()
		}
		return nil, pfx.Err(err)
	}

	return GSObjectReader{Reader: rdr, close: closer}, nil
}
