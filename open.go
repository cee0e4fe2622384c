// Package mirreport renders coordinated multi-panel miRNA QC reports. The root
// package holds the input plumbing shared by the report loader and the
// command-line hosts.
package mirreport

import (
	"context"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// Open returns a reader for a local path or a gs://bucket/object URL,
// transparently decompressing the payload when it is gzip, zip, xz, bzip2 or
// zlib encoded.
func Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return OpenWithClient(ctx, nil, path)
}

// OpenWithClient is Open with a caller-owned storage client used for gs://
// paths. The client is not closed.
func OpenWithClient(ctx context.Context, client *storage.Client, path string) (io.ReadCloser, error) {
	var raw io.ReadCloser

	if strings.HasPrefix(path, "gs://") {
		rc, err := openGS(ctx, client, path)
		if err != nil {
			return nil, err
		}
		raw = rc
	} else {
		local, err := ExpandHome(path)
		if err != nil {
			return nil, err
		}
		f, err := os.Open(local)
		if err != nil {
			return nil, pfx.Err(err)
		}
		raw = f
	}

	rc, err := MaybeDecompressReadCloser(raw)
	if err != nil {
		raw.Close()
		return nil, pfx.Err(err)
	}

	return rc, nil
}
