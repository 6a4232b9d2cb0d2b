package googleclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"google.golang.org/api/option"
)

// NewTestClient returns a TestClient whose requests hit the given handler.
// Methods on the new TestClient are overrideable as well.
func NewTestClient(handleFunc http.HandlerFunc) (*httptest.Server, *TestClient, error) {
	ts := httptest.NewServer(handleFunc)
	opts := []option.ClientOption{
		option.WithEndpoint(ts.URL),
		option.WithHTTPClient(http.DefaultClient),
	}
	c, err := NewClient(context.Background(), opts...)
	if err != nil {
		return nil, nil, err
	}

	tc := &TestClient{Client: *c, BasePath: ts.URL}
	return ts, tc, nil
}

// TestClient is a Client with overrideable methods.
type TestClient struct {
	Client
	// BasePath is the URL of the backing test server; binding services
	// under test should be pointed at it.
	BasePath string

	DoFn     func(ctx context.Context, method, url string, body, result interface{}) error
	UploadFn func(ctx context.Context, url, contentType string, media io.Reader, result interface{}) error
}

// Do uses the override method DoFn or the real implementation.
func (c *TestClient) Do(ctx context.Context, method, url string, body, result interface{}) error {
	if c.DoFn != nil {
		return c.DoFn(ctx, method, url, body, result)
	}
	return c.Client.Do(ctx, method, url, body, result)
}

// Upload uses the override method UploadFn or the real implementation.
func (c *TestClient) Upload(ctx context.Context, url, contentType string, media io.Reader, result interface{}) error {
	if c.UploadFn != nil {
		return c.UploadFn(ctx, url, contentType, media, result)
	}
	return c.Client.Upload(ctx, url, contentType, media, result)
}
