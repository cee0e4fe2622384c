package mirreport

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestDetectDataType(t *testing.T) {
	cases := []struct {
		Head     []byte
		Expected DataType
	}{
		{[]byte{0x1f, 0x8b, 0x08, 0x00, 0x00, 0x00}, DataTypeGzip},
		{[]byte{0x50, 0x4b, 0x03, 0x04, 0x14, 0x00}, DataTypeZip},
		{[]byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}, DataTypeXZ},
		{[]byte{0x42, 0x5a, 0x68, 0x39}, DataTypeBZip2},
		{[]byte(`{"results":[]}`), DataTypeNoCompression},
		{[]byte(`{`), DataTypeNoCompression},
		{nil, DataTypeInvalid},
	}

	for _, cs := range cases {
		if got := DetectDataType(cs.Head); got != cs.Expected {
			t.Errorf("DetectDataType(%x): expected %s, got %s", cs.Head, cs.Expected, got)
		}
	}
}

func TestMaybeDecompressReadCloser(t *testing.T) {
	payload := []byte(`{"reportTitle":"demo"}`)

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	gw.Write(payload)
	gw.Close()

	var zl bytes.Buffer
	zw := zlib.NewWriter(&zl)
	zw.Write(payload)
	zw.Close()

	inputs := map[string][]byte{
		"plain": payload,
		"gzip":  gz.Bytes(),
		"zlib":  zl.Bytes(),
	}

	for name, input := range inputs {
		rc, err := MaybeDecompressReadCloser(io.NopCloser(bytes.NewReader(input)))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		got, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if err := rc.Close(); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("%s: expected %q, got %q", name, payload, got)
		}
	}
}

func TestOpenLocal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json.gz")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gw := gzip.NewWriter(f)
	gw.Write([]byte("{}"))
	gw.Close()
	f.Close()

	rc, err := Open(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "{}" {
		t.Errorf("expected {}, got %q", got)
	}
}

func TestSplitGSURL(t *testing.T) {
	bucket, object, err := SplitGSURL("gs://my-bucket/runs/2018/mirtrace.json")
	if err != nil {
		t.Fatal(err)
	}
	if bucket != "my-bucket" || object != "runs/2018/mirtrace.json" {
		t.Errorf("unexpected split %q %q", bucket, object)
	}

	for _, bad := range []string{"/tmp/x.json", "gs://bucket", "gs:///object"} {
		if _, _, err := SplitGSURL(bad); err == nil {
			t.Errorf("expected an error for %q", bad)
		}
	}
}
