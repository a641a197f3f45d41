// Package file provides abstractions for reading firmware images from different sources.
package file

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/xishang0128/lzma-dumper/common/i18n"
)

// Reader interface for reading image files
type Reader interface {
	io.ReaderAt
	io.Closer
	Size() int64
	Read(offset int64, size int) ([]byte, error)
}

var userAgent string

// SetUserAgent sets the User-Agent sent with HTTP range requests.
func SetUserAgent(ua string) {
	userAgent = ua
}

// Open opens path as a local file, or as a remote file for http(s) URLs.
func Open(path string) (Reader, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return NewHTTPFile(path)
	}
	return NewLocalFile(path)
}

// LocalFile implements Reader interface for local files
type LocalFile struct {
	file *os.File
	size int64
}

// NewLocalFile opens a local file for reading.
func NewLocalFile(path string) (*LocalFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	return &LocalFile{
		file: file,
		size: stat.Size(),
	}, nil
}

func (f *LocalFile) ReadAt(p []byte, off int64) (n int, err error) {
	return f.file.ReadAt(p, off)
}

func (f *LocalFile) Close() error {
	return f.file.Close()
}

func (f *LocalFile) Size() int64 {
	return f.size
}

// Read returns up to size bytes at offset; fewer only at the end of the file.
func (f *LocalFile) Read(offset int64, size int) ([]byte, error) {
	data := make([]byte, size)
	n, err := f.file.ReadAt(data, offset)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return data[:n], nil
}

// HTTPFile implements Reader interface for images served over HTTP
type HTTPFile struct {
	url    string
	client *http.Client
	size   int64
}

// NewHTTPFile opens an HTTP URL for reading.
// The server must support range requests (Accept-Ranges: bytes).
func NewHTTPFile(url string) (*HTTPFile, error) {
	client := &http.Client{}

	req, err := http.NewRequest(http.MethodHead, url, nil)
	if err != nil {
		return nil, err
	}
	setHeaders(req)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.Header.Get("Accept-Ranges") != "bytes" {
		return nil, errors.New(i18n.I18nMsg.Common.HTTPRemoteDoesNotSupportRanges)
	}

	contentLength := resp.Header.Get("Content-Length")
	if contentLength == "" {
		return nil, errors.New(i18n.I18nMsg.Common.HTTPRemoteHasNoLength)
	}

	size, err := strconv.ParseInt(contentLength, 10, 64)
	if err != nil {
		return nil, fmt.Errorf(i18n.I18nMsg.Common.HTTPInvalidContentLength, err)
	}
	if size == 0 {
		return nil, errors.New(i18n.I18nMsg.Common.HTTPRemoteHasNoLength)
	}

	return &HTTPFile{
		url:    url,
		client: client,
		size:   size,
	}, nil
}

func (f *HTTPFile) ReadAt(p []byte, off int64) (n int, err error) {
	data, err := f.Read(off, len(p))
	if err != nil {
		return 0, err
	}
	n = copy(p, data)
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (f *HTTPFile) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

func (f *HTTPFile) Size() int64 {
	return f.size
}

func (f *HTTPFile) Read(offset int64, size int) ([]byte, error) {
	if size == 0 || offset >= f.size {
		return []byte{}, nil
	}

	endPos := min(offset+int64(size)-1, f.size-1)

	req, err := http.NewRequest(http.MethodGet, f.url, nil)
	if err != nil {
		return nil, err
	}
	setHeaders(req)
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", offset, endPos))

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusPartialContent {
		return nil, fmt.Errorf(i18n.I18nMsg.Common.HTTPRemoteDidNotReturnPartial, resp.StatusCode)
	}

	data := make([]byte, endPos-offset+1)
	n, err := io.ReadFull(resp.Body, data)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, err
	}

	return data[:n], nil
}

func setHeaders(req *http.Request) {
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
}

// Section is a window of another Reader, such as an image stored in an archive.
type Section struct {
	r    Reader
	base int64
	size int64
}

// NewSection returns a Reader over size bytes of r starting at base. Closing
// the section closes r.
func NewSection(r Reader, base, size int64) *Section {
	return &Section{r: r, base: base, size: size}
}

func (s *Section) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= s.size {
		return 0, io.EOF
	}
	if rem := s.size - off; int64(len(p)) > rem {
		n, err := s.r.ReadAt(p[:rem], s.base+off)
		if err == nil {
			err = io.EOF
		}
		return n, err
	}
	return s.r.ReadAt(p, s.base+off)
}

func (s *Section) Close() error {
	return s.r.Close()
}

func (s *Section) Size() int64 {
	return s.size
}

func (s *Section) Read(offset int64, size int) ([]byte, error) {
	if offset < 0 || offset > s.size {
		return nil, io.EOF
	}
	if rem := s.size - offset; int64(size) > rem {
		size = int(rem)
	}
	return s.r.Read(s.base+offset, size)
}
