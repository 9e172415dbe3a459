package middleware

import (
	"bytes"
	"compress/gzip"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/go-resty/resty/v2"
)

// DecompressMiddleware inflates gzip and brotli response bodies. Needed
// because setting Accept-Encoding by hand disables net/http's transparent
// gzip handling.
func DecompressMiddleware(c *resty.Client, resp *resty.Response) error {
	var reader io.Reader

	switch resp.Header().Get("Content-Encoding") {
	case "br":
		reader = brotli.NewReader(bytes.NewReader(resp.Body()))
	case "gzip":
		gz, err := gzip.NewReader(bytes.NewReader(resp.Body()))
		if err != nil {
			return err
		}
		defer gz.Close()
		reader = gz
	default:
		return nil
	}

	decompressed, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	resp.SetBody(decompressed)
	return nil
}
