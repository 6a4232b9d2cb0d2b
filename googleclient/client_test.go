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

package googleclient

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

func TestDoSendsJSONBody(t *testing.T) {
	var gotMethod, gotPath, gotContentType, gotRequestID, gotAPIClient, gotBody string
	ts, c, err := NewTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("x-goog-request-id")
		gotAPIClient = r.Header.Get("x-goog-api-client")
		b, _ := ioutil.ReadAll(r.Body)
		gotBody = string(b)
		fmt.Fprintln(w, `{"name": "things/thing1"}`)
	})
	if err != nil {
		t.Fatal(err)
	}
	defer ts.Close()

	body := map[string]string{"displayName": "thing one"}
	var result struct {
		Name string `json:"name"`
	}
	err = c.Do(context.Background(), http.MethodPost, ts.URL+"/v1/things", body, &result)

	assert.Nil(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/v1/things", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "gl-go google-rest-clients/"+Version, gotAPIClient)
	assert.JSONEq(t, `{"displayName":"thing one"}`, gotBody)
	assert.Equal(t, "things/thing1", result.Name)
}

func TestDoGetSendsNoBodyOrContentType(t *testing.T) {
	ts, c, err := NewTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "" {
			t.Errorf("unexpected Content-Type %q on GET", r.Header.Get("Content-Type"))
		}
		b, _ := ioutil.ReadAll(r.Body)
		if len(b) != 0 {
			t.Errorf("unexpected body %q on GET", b)
		}
		fmt.Fprintln(w, `{}`)
	})
	if err != nil {
		t.Fatal(err)
	}
	defer ts.Close()

	assert.Nil(t, c.Do(context.Background(), http.MethodGet, ts.URL+"/v1/things/thing1", nil, nil))
}

func TestDoPropagatesGoogleapiError(t *testing.T) {
	ts, c, err := NewTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintln(w, `{"error": {"code": 404, "message": "thing not found"}}`)
	})
	if err != nil {
		t.Fatal(err)
	}
	defer ts.Close()

	err = c.Do(context.Background(), http.MethodGet, ts.URL+"/v1/things/missing", nil, nil)

	assert.NotNil(t, err)
	gerr, ok := err.(*googleapi.Error)
	if !ok {
		t.Fatalf("want *googleapi.Error, got %T: %v", err, err)
	}
	assert.Equal(t, http.StatusNotFound, gerr.Code)
}

func TestDoDecodesNestedResult(t *testing.T) {
	ts, c, err := NewTestClient(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"things": [{"name": "things/a"}, {"name": "things/b"}], "nextPageToken": "tok"}`)
	})
	if err != nil {
		t.Fatal(err)
	}
	defer ts.Close()

	type thing struct {
		Name string `json:"name"`
	}
	var got struct {
		Things        []thing `json:"things"`
		NextPageToken string  `json:"nextPageToken"`
	}
	if err := c.Do(context.Background(), http.MethodGet, ts.URL+"/v1/things", nil, &got); err != nil {
		t.Fatal(err)
	}

	want := got
	want.Things = []thing{{Name: "things/a"}, {Name: "things/b"}}
	want.NextPageToken = "tok"
	if diff := pretty.Compare(got, want); diff != "" {
		t.Errorf("unexpected response (-got +want):\n%s", diff)
	}
}

func TestDoRejectsMalformedResponse(t *testing.T) {
	ts, c, err := NewTestClient(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"name": `)
	})
	if err != nil {
		t.Fatal(err)
	}
	defer ts.Close()

	var result struct{}
	err = c.Do(context.Background(), http.MethodGet, ts.URL+"/v1/things/thing1", nil, &result)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}

func TestDoRejectsUnbuildableRequest(t *testing.T) {
	c := &Client{}

	err := c.Do(context.Background(), http.MethodGet, "://missing-scheme", nil, nil)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "building request")

	err = c.Upload(context.Background(), "://missing-scheme", "image/png", strings.NewReader("x"), nil)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "building request")
}

func TestUploadSendsRawMedia(t *testing.T) {
	var gotContentType string
	var gotLength int64
	var gotBody []byte
	ts, c, err := NewTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotLength = r.ContentLength
		gotBody, _ = ioutil.ReadAll(r.Body)
		fmt.Fprintln(w, `{"id": "icon"}`)
	})
	if err != nil {
		t.Fatal(err)
	}
	defer ts.Close()

	media := []byte{0x89, 'P', 'N', 'G'}
	var result struct {
		ID string `json:"id"`
	}
	err = c.Upload(context.Background(), ts.URL+"/upload/v1/things/icon", "image/png", bytes.NewReader(media), &result)

	assert.Nil(t, err)
	assert.Equal(t, "image/png", gotContentType)
	assert.Equal(t, int64(len(media)), gotLength)
	assert.Equal(t, media, gotBody)
	assert.Equal(t, "icon", result.ID)
}

func TestNewClientWithTokenSourceSendsBearerToken(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprintln(w, `{}`)
	}))
	defer ts.Close()

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"})
	c, err := NewClientWithTokenSource(context.Background(), src, option.WithEndpoint(ts.URL))
	if err != nil {
		t.Fatal(err)
	}

	assert.Nil(t, c.Do(context.Background(), http.MethodGet, ts.URL+"/v1/things", nil, nil))
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestUploadLogsPayloadSize(t *testing.T) {
	ts, c, err := NewTestClient(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{}`)
	})
	if err != nil {
		t.Fatal(err)
	}
	defer ts.Close()

	logger := &recordingLogger{}
	c.Client.Logger = logger
	err = c.Upload(context.Background(), ts.URL+"/upload/v1/things/icon", "image/png", strings.NewReader("0123456789"), nil)

	assert.Nil(t, err)
	assert.Equal(t, 1, len(logger.messages))
	assert.Contains(t, logger.messages[0], "10 B")
}

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Debugf(format string, v ...interface{}) {
	l.messages = append(l.messages, fmt.Sprintf(format, v...))
}
