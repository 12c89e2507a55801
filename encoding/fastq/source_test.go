package fastq

import (
	"compress/gzip"
	"os"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/vcontext"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	f, err := os.CreateTemp("", name)
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	t.Cleanup(func() { os.Remove(f.Name()) })
	return f.Name()
}

func TestFileHandlePlainText(t *testing.T) {
	path := writeTempFile(t, "fastq-plain-*.fastq", "@read1\nACGT\n+\nIIII\n")

	ctx := vcontext.Background()
	var errp errors.Once
	fh := newFileHandle(ctx, path, &errp)
	if err := errp.Err(); err != nil {
		t.Fatalf("newFileHandle: %v", err)
	}
	defer fh.close()

	ls, err := fh.open()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	r := newFourLineReader(ls, false, path)
	if !r.Read() {
		t.Fatalf("Read() failed: %v", r.Err())
	}
	if r.Defline().Name != "read1" {
		t.Errorf("name = %q, want read1", r.Defline().Name)
	}

	if err := r.Restart(); err != nil {
		t.Fatalf("Restart(): %v", err)
	}
	if !r.Read() {
		t.Fatalf("Read() after Restart() failed: %v", r.Err())
	}
	if r.Defline().Name != "read1" {
		t.Errorf("name after restart = %q, want read1", r.Defline().Name)
	}
}

func TestFileHandleGzipAutoDetect(t *testing.T) {
	f, err := os.CreateTemp("", "fastq-gz-*.fastq.gz")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	path := f.Name()
	t.Cleanup(func() { os.Remove(path) })

	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte("@read1\nACGT\n+\nIIII\n")); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	ctx := vcontext.Background()
	var errp errors.Once
	fh := newFileHandle(ctx, path, &errp)
	if err := errp.Err(); err != nil {
		t.Fatalf("newFileHandle: %v", err)
	}
	defer fh.close()

	ls, err := fh.open()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	r := newFourLineReader(ls, false, path)
	if !r.Read() {
		t.Fatalf("Read() on gzip input failed: %v", r.Err())
	}
	if r.Seq().Upper != "ACGT" {
		t.Errorf("seq = %q, want ACGT", r.Seq().Upper)
	}

	if err := r.Restart(); err != nil {
		t.Fatalf("Restart() on gzip input: %v", err)
	}
	if !r.Read() {
		t.Fatalf("Read() after Restart() on gzip input failed: %v", r.Err())
	}
}
