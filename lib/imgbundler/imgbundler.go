// Package imgbundler loads the images drawing scripts reference, from disk, over http
// or from data URIs.
package imgbundler

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cdr.dev/slog"
	lru "github.com/hashicorp/golang-lru/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/svgdraw/lib/log"
)

const (
	DefaultCacheSize = 64

	fetchTimeout = 10 * time.Second
)

var transport = http.DefaultTransport

type Loader struct {
	// Dir resolves relative paths.
	Dir string

	images *lru.Cache[string, image.Image]
}

func NewLoader(dir string, cacheSize int) (*Loader, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	images, err := lru.New[string, image.Image](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Loader{
		Dir:    dir,
		images: images,
	}, nil
}

// Image loads and decodes the raster image at src. Decoded images are cached by src.
func (l *Loader) Image(ctx context.Context, src string) (_ image.Image, err error) {
	defer xdefer.Errorf(&err, "failed to load image %q", src)

	if img, ok := l.images.Get(src); ok {
		return img, nil
	}

	data, err := l.read(ctx, src)
	if err != nil {
		return nil, err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	log.Debug(ctx, "decoded image", slog.F("src", src), slog.F("format", format))

	l.images.Add(src, img)
	return img, nil
}

// SVG reads the markup of the SVG document at src.
func (l *Loader) SVG(ctx context.Context, src string) (_ string, err error) {
	defer xdefer.Errorf(&err, "failed to load svg %q", src)

	data, err := l.read(ctx, src)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (l *Loader) read(ctx context.Context, src string) ([]byte, error) {
	switch {
	case strings.HasPrefix(src, "data:"):
		return decodeDataURI(src)
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return fetch(ctx, src)
	default:
		fp := src
		if !filepath.IsAbs(fp) && l.Dir != "" {
			fp = filepath.Join(l.Dir, fp)
		}
		return os.ReadFile(fp)
	}
}

func decodeDataURI(uri string) ([]byte, error) {
	i := strings.Index(uri, ",")
	if i < 0 {
		return nil, fmt.Errorf("malformed data URI")
	}
	meta, payload := uri[len("data:"):i], uri[i+1:]
	if !strings.HasSuffix(meta, ";base64") {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	}
	return base64.StdEncoding.DecodeString(payload)
}

func fetch(ctx context.Context, href string) ([]byte, error) {
	log.Info(ctx, "fetching", slog.F("url", href))

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", href, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Transport: transport}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("expected status 200 but got %d %s", resp.StatusCode, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
