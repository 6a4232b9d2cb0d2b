//  Copyright 2023 Google Inc. All Rights Reserved.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package googleclient performs authenticated JSON exchanges with Google
// REST APIs on behalf of the API binding packages. It owns credentials and
// transport; the bindings own URLs and payload shapes.
package googleclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/GoogleCloudPlatform/google-rest-clients/logging"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	htransport "google.golang.org/api/transport/http"
)

//go:generate go run github.com/golang/mock/mockgen -package mocks -source $GOFILE -destination ../mocks/mock_requester.go

// Requester performs a single authenticated HTTP exchange. A non-2xx
// response surfaces as a *googleapi.Error; no retries or classification
// happen at this layer.
type Requester interface {
	// Do issues a JSON request. body, when non-nil, is marshaled as the
	// request payload; result, when non-nil, receives the decoded response.
	Do(ctx context.Context, method, url string, body, result interface{}) error

	// Upload issues a raw media upload of the given content type.
	Upload(ctx context.Context, url, contentType string, media io.Reader, result interface{}) error
}

// Client is an authenticated Requester backed by a Google API HTTP
// transport. Credentials, scopes and endpoint overrides all arrive through
// option.ClientOption; Application Default Credentials apply otherwise.
type Client struct {
	hc     *http.Client
	Logger logging.Logger

	// Endpoint is non-empty when option.WithEndpoint overrode the API's
	// default endpoint; binding services adopt it as their base path.
	Endpoint string
}

// NewClient creates an authenticated client.
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	hc, ep, err := htransport.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("dialing: %v", err)
	}
	return &Client{hc: hc, Logger: logging.NopLogger{}, Endpoint: ep}, nil
}

// NewClientWithTokenSource creates a client that authenticates with the
// given token source instead of Application Default Credentials.
func NewClientWithTokenSource(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (*Client, error) {
	o := append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)
	return NewClient(ctx, o...)
}

// Do implements Requester.
func (c *Client) Do(ctx context.Context, method, url string, body, result interface{}) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %v", err)
		}
		payload = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return fmt.Errorf("building request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.roundTrip(req, result)
}

// Upload implements Requester. The media is buffered so the request carries
// a Content-Length, which the upload endpoints require.
func (c *Client) Upload(ctx context.Context, url, contentType string, media io.Reader, result interface{}) error {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, media)
	if err != nil {
		return fmt.Errorf("reading media: %v", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return fmt.Errorf("building request: %v", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = n
	c.Logger.Debugf("uploading %s of %s to %s", humanize.Bytes(uint64(n)), contentType, url)
	return c.roundTrip(req, result)
}

func (c *Client) roundTrip(req *http.Request, result interface{}) error {
	req.Header.Set("x-goog-api-client", "gl-go google-rest-clients/"+Version)
	req.Header.Set("x-goog-request-id", uuid.New().String())
	res, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer googleapi.CloseBody(res)
	if err := googleapi.CheckResponse(res); err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding response: %v", err)
	}
	return nil
}

// Version identifies this client library in request headers.
const Version = "0.1.0"
