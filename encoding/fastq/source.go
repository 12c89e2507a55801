package fastq

import (
	"bufio"
	"context"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/klauspost/compress/gzip"
)

// fileHandle owns one input path for the lifetime of a run: the underlying
// file.File (so S3/GCS paths work transparently, per grailbio/base/file) and
// the decompressing reader layered over it. Unlike the reference this
// package replaces, gzip is not assumed: the first two bytes are peeked to
// detect the gzip magic number, so plain-text inputs skip the gzip reader
// entirely.
type fileHandle struct {
	ctx  context.Context
	path string
	f    file.File
	errp *errors.Once
}

func newFileHandle(ctx context.Context, path string, errp *errors.Once) *fileHandle {
	fh := &fileHandle{ctx: ctx, path: path, errp: errp}
	f, err := file.Open(ctx, path)
	if err != nil {
		errp.Set(err)
		return fh
	}
	fh.f = f
	return fh
}

// open returns a fresh lineSource positioned at the start of the file,
// transparently gunzipping if the magic number is present. It is called once
// per file; lineSource.restart rewinds without calling it again (by seeking,
// or through the reopen function for gzip input).
func (fh *fileHandle) open() (*lineSource, error) {
	if fh.f == nil {
		return nil, errors.E("open", fh.path, "file handle not initialized")
	}
	r := fh.f.Reader(fh.ctx)
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, errors.E(err, "seek", fh.path)
	}
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, errors.E(err, "peek", fh.path)
	}
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.E(err, "gzip", fh.path)
		}
		return newGzipLineSource(r, gz), nil
	}
	return newLineSource(&seekableReader{r: r, br: br}), nil
}

func (fh *fileHandle) close() error {
	if fh.f == nil {
		return nil
	}
	return fh.f.Close(fh.ctx)
}

// seekableReader lets the plain-text path share lineSource's io.Seeker-based
// restart logic: reads come from the buffered reader, but Seek drops back to
// the underlying file.File reader and a fresh bufio.Reader is installed by
// the caller (lineSource.restart re-creates its scanner against r directly,
// so seekableReader only needs to satisfy Read+Seek).
type seekableReader struct {
	r  io.ReadSeeker
	br *bufio.Reader
}

func (s *seekableReader) Read(p []byte) (int, error) {
	if s.br != nil {
		n, err := s.br.Read(p)
		if err == io.EOF {
			s.br = nil
		}
		return n, err
	}
	return s.r.Read(p)
}

func (s *seekableReader) Seek(offset int64, whence int) (int64, error) {
	s.br = nil
	return s.r.Seek(offset, whence)
}

// newGzipLineSource wraps a non-seekable gzip.Reader; restart re-opens the
// underlying file.File reader and builds a fresh gzip.Reader, since
// compress/gzip.Reader itself cannot seek.
func newGzipLineSource(under io.ReadSeeker, gz *gzip.Reader) *lineSource {
	ls := newLineSource(gz)
	ls.seeker = nil // force restart() through ls.reopen below.
	ls.reopen = func() (io.Reader, error) {
		if _, err := under.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		return gzip.NewReader(under)
	}
	return ls
}
