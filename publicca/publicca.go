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

// Package publicca provides access to the Public Certificate Authority API.
package publicca

import (
	"context"
	"fmt"
	"net/http"

	"github.com/GoogleCloudPlatform/google-rest-clients/codec"
	"github.com/GoogleCloudPlatform/google-rest-clients/googleclient"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const basePath = "https://publicca.googleapis.com/"

// CloudPlatformScope grants full access to Google Cloud resources.
const CloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// Service is a client for the Public Certificate Authority API.
type Service struct {
	BasePath string

	ExternalAccountKeys *ExternalAccountKeysService

	requester googleclient.Requester
}

// NewService creates a new Service with an authenticated client.
func NewService(ctx context.Context, opts ...option.ClientOption) (*Service, error) {
	o := append([]option.ClientOption{option.WithScopes(CloudPlatformScope)}, opts...)
	c, err := googleclient.NewClient(ctx, o...)
	if err != nil {
		return nil, fmt.Errorf("publicca client: %v", err)
	}
	s := New(c)
	if c.Endpoint != "" {
		s.BasePath = c.Endpoint
	}
	return s, nil
}

// New creates a Service that issues its calls through the given requester.
func New(r googleclient.Requester) *Service {
	s := &Service{BasePath: basePath, requester: r}
	s.ExternalAccountKeys = &ExternalAccountKeysService{s: s}
	return s
}

// ExternalAccountKeysService provides operations on external account keys.
type ExternalAccountKeysService struct {
	s *Service
}

// ExternalAccountKey is a binding between an ACME account and the external
// account issued by this API. The MAC key travels base64-encoded.
type ExternalAccountKey struct {
	// Name is the resource name, in the format
	// projects/{project}/locations/{location}/externalAccountKeys/{key_id}.
	Name string `json:"name,omitempty"`
	// KeyID identifies the key to the ACME CA. Output only.
	KeyID string `json:"keyId,omitempty"`
	// B64MacKey is the private MAC key. Output only.
	B64MacKey codec.Bytes `json:"b64MacKey,omitempty"`
}

// Create creates a new ExternalAccountKey bound to the project and location
// given by parent, in the format projects/{project}/locations/{location}.
// The returned key includes the one-time-view MAC key material.
func (r *ExternalAccountKeysService) Create(ctx context.Context, parent string) (*ExternalAccountKey, error) {
	u := googleapi.ResolveRelative(r.s.BasePath, "v1/"+parent+"/externalAccountKeys")
	var key ExternalAccountKey
	if err := r.s.requester.Do(ctx, http.MethodPost, u, &ExternalAccountKey{}, &key); err != nil {
		return nil, err
	}
	return &key, nil
}
