package prettyprint

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// HTTPInput returns a reader input that fetches rawURL with a GET request.
// The request is sent on first read, so registering the input performs no
// I/O. A nil client uses http.DefaultClient. The URL becomes the input name.
func HTTPInput(ctx context.Context, rawURL string, client *http.Client) (Input, error) {
	if rawURL == "" {
		return Input{}, fmt.Errorf("http input: URL is required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Input{}, fmt.Errorf("http input: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Input{}, fmt.Errorf("http input: unsupported scheme %q", u.Scheme)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if client == nil {
		client = http.DefaultClient
	}
	lr := &lazyReader{open: func() (io.ReadCloser, error) {
		return fetch(ctx, client, rawURL)
	}}
	return ReaderInput(lr).WithName(rawURL), nil
}

func fetch(ctx context.Context, client *http.Client, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("http input: build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http input: request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("http input: status %s", resp.Status)
	}
	return resp.Body, nil
}

// lazyReader defers opening until the first Read.
type lazyReader struct {
	open func() (io.ReadCloser, error)
	rc   io.ReadCloser
	err  error
}

func (l *lazyReader) Read(p []byte) (int, error) {
	if l.rc == nil && l.err == nil {
		l.rc, l.err = l.open()
	}
	if l.err != nil {
		return 0, l.err
	}
	return l.rc.Read(p)
}

func (l *lazyReader) Close() error {
	if l.rc == nil {
		return nil
	}
	return l.rc.Close()
}
