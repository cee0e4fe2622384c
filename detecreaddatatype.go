package mirreport

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
)

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZ:     {0x1f, 0x9d},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

func (d DataType) String() string {
	switch d {
	case DataTypeNoCompression:
		return "none"
	case DataTypeGzip:
		return "gzip"
	case DataTypeZip:
		return "zip"
	case DataTypeXZ:
		return "xz"
	case DataTypeZ:
		return "zlib"
	case DataTypeBZip2:
		return "bzip2"
	}
	return "invalid"
}

// DetectDataType matches the leading bytes of a stream against known
// compression signatures. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
func DetectDataType(head []byte) DataType {
	if len(head) == 0 {
		return DataTypeInvalid
	}

Outer:
	for dt, sig := range byteCodeSigs {
		if len(head) < len(sig) {
			continue
		}
		for position := range sig {
			if head[position] != sig[position] {
				continue Outer
			}
		}
		return dt
	}

	return DataTypeNoCompression
}

// MaybeDecompressReadCloser peeks at the start of rc and, if it carries a
// known compression signature, wraps it in the matching decompressor. Closing
// the returned value closes rc.
func MaybeDecompressReadCloser(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)

	// Short inputs (a tiny JSON document) yield io.EOF here with whatever
	// bytes exist, which is still enough to decide.
	head, err := br.Peek(6)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}

	var r io.Reader
	switch DetectDataType(head) {
	case DataTypeGzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		r = gz
	case DataTypeZip:
		zr := zipstream.NewReader(br)
		// The report is the first file in the archive.
		if _, err := zr.Next(); err != nil {
			return nil, err
		}
		r = zr
	case DataTypeBZip2:
		r = bzip2.NewReader(br)
	case DataTypeXZ:
		xr, err := xz.NewReader(br, 0)
		if err != nil {
			return nil, err
		}
		r = xr
	case DataTypeZ:
		zl, err := zlib.NewReader(br)
		if err != nil {
			return nil, err
		}
		r = zl
	default:
		// No data type detected. For now, we assume this is uncompressed.
		r = br
	}

	return &readCloserFaker{Reader: r, close: rc.Close}, nil
}

// readCloserFaker "upgrades" decompressing readers so that closing them
// closes the underlying source.
type readCloserFaker struct {
	io.Reader
	close func() error
}

func (c *readCloserFaker) Close() error {
	if c.close == nil {
		return nil
	}
	return c.close()
}
