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

// Package datalabeling provides access to the Data Labeling API.
package datalabeling

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/GoogleCloudPlatform/google-rest-clients/codec"
	"github.com/GoogleCloudPlatform/google-rest-clients/googleclient"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const basePath = "https://datalabeling.googleapis.com/"

// CloudPlatformScope grants full access to Google Cloud resources.
const CloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// Service is a client for the Data Labeling API.
type Service struct {
	BasePath string

	Datasets          *DatasetsService
	AnnotatedDatasets *AnnotatedDatasetsService
	DataItems         *DataItemsService
	Image             *ImageService

	requester googleclient.Requester
}

// NewService creates a new Service with an authenticated client.
func NewService(ctx context.Context, opts ...option.ClientOption) (*Service, error) {
	o := append([]option.ClientOption{option.WithScopes(CloudPlatformScope)}, opts...)
	c, err := googleclient.NewClient(ctx, o...)
	if err != nil {
		return nil, fmt.Errorf("datalabeling client: %v", err)
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
	s.Datasets = &DatasetsService{s: s}
	s.AnnotatedDatasets = &AnnotatedDatasetsService{s: s}
	s.DataItems = &DataItemsService{s: s}
	s.Image = &ImageService{s: s}
	return s
}

func (s *Service) resolve(name string) string {
	return googleapi.ResolveRelative(s.BasePath, "v1beta1/"+name)
}

// Dataset is the resource to which data items and annotations belong.
type Dataset struct {
	// Name is the resource name, in the format
	// projects/{project_id}/datasets/{dataset_id}. Output only.
	Name string `json:"name,omitempty"`
	// DisplayName is a user-provided name, at most 64 characters.
	DisplayName string `json:"displayName,omitempty"`
	// Description is a user-provided description, at most 10000 characters.
	Description string `json:"description,omitempty"`
	// CreateTime records when the dataset was created. Output only.
	CreateTime *codec.Timestamp `json:"createTime,omitempty"`
	// InputConfigs lists the sources the dataset's data items came from.
	InputConfigs []*InputConfig `json:"inputConfigs,omitempty"`
	// BlockingResources names resources that block a delete of the dataset.
	BlockingResources []string `json:"blockingResources,omitempty"`
	// DataItemCount is the number of data items in the dataset. Output only.
	DataItemCount codec.Int64 `json:"dataItemCount,omitempty"`
}

// InputConfig describes where a dataset's data was imported from.
type InputConfig struct {
	DataType       string     `json:"dataType,omitempty"`
	AnnotationType string     `json:"annotationType,omitempty"`
	GcsSource      *GcsSource `json:"gcsSource,omitempty"`
}

// GcsSource is the Cloud Storage location of an import file.
type GcsSource struct {
	InputURI string `json:"inputUri,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// CreateDatasetRequest is the body of a dataset creation call.
type CreateDatasetRequest struct {
	Dataset *Dataset `json:"dataset,omitempty"`
}

// ListDatasetsResponse is one page of datasets.
type ListDatasetsResponse struct {
	Datasets      []*Dataset `json:"datasets,omitempty"`
	NextPageToken string     `json:"nextPageToken,omitempty"`
}

// AnnotatedDataset is a dataset joined with the annotations produced by one
// labeling task.
type AnnotatedDataset struct {
	// Name is the resource name, in the format
	// projects/{project_id}/datasets/{dataset_id}/annotatedDatasets/{annotated_dataset_id}.
	Name string `json:"name,omitempty"`
	// DisplayName is inherited from the labeling task. Output only.
	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description,omitempty"`
	// AnnotationSource records what produced the annotations. Output only.
	AnnotationSource string `json:"annotationSource,omitempty"`
	AnnotationType   string `json:"annotationType,omitempty"`
	// ExampleCount is the number of examples in the annotated dataset.
	ExampleCount codec.Int64 `json:"exampleCount,omitempty"`
	// CompletedExampleCount is the number of examples with completed
	// annotations.
	CompletedExampleCount codec.Int64      `json:"completedExampleCount,omitempty"`
	LabelStats            *LabelStats      `json:"labelStats,omitempty"`
	CreateTime            *codec.Timestamp `json:"createTime,omitempty"`
}

// LabelStats maps each annotation spec to how many items carry it.
type LabelStats struct {
	ExampleCount map[string]codec.Int64 `json:"exampleCount,omitempty"`
}

// ListAnnotatedDatasetsResponse is one page of annotated datasets.
type ListAnnotatedDatasetsResponse struct {
	AnnotatedDatasets []*AnnotatedDataset `json:"annotatedDatasets,omitempty"`
	NextPageToken     string              `json:"nextPageToken,omitempty"`
}

// DataItem is a piece of data awaiting or carrying annotations, created when
// data is imported into a dataset.
type DataItem struct {
	Name         string        `json:"name,omitempty"`
	ImagePayload *ImagePayload `json:"imagePayload,omitempty"`
	TextPayload  *TextPayload  `json:"textPayload,omitempty"`
}

// ImagePayload holds image metadata plus an inline thumbnail.
type ImagePayload struct {
	MimeType string `json:"mimeType,omitempty"`
	ImageURI string `json:"imageUri,omitempty"`
	// ImageThumbnail is the raw thumbnail bytes, base64 on the wire.
	ImageThumbnail codec.Bytes `json:"imageThumbnail,omitempty"`
	SignedURI      string      `json:"signedUri,omitempty"`
}

// TextPayload holds document text content.
type TextPayload struct {
	TextContent string `json:"textContent,omitempty"`
}

// ListDataItemsResponse is one page of data items.
type ListDataItemsResponse struct {
	DataItems     []*DataItem `json:"dataItems,omitempty"`
	NextPageToken string      `json:"nextPageToken,omitempty"`
}

// LabelImageRequest starts an image labeling task over a dataset.
type LabelImageRequest struct {
	BasicConfig *HumanAnnotationConfig `json:"basicConfig,omitempty"`
	// Feature selects the kind of labeling, e.g. "CLASSIFICATION".
	Feature                   string                     `json:"feature,omitempty"`
	ImageClassificationConfig *ImageClassificationConfig `json:"imageClassificationConfig,omitempty"`
}

// HumanAnnotationConfig configures how human labelers process a task.
type HumanAnnotationConfig struct {
	Instruction                 string   `json:"instruction,omitempty"`
	AnnotatedDatasetDisplayName string   `json:"annotatedDatasetDisplayName,omitempty"`
	AnnotatedDatasetDescription string   `json:"annotatedDatasetDescription,omitempty"`
	LabelGroup                  string   `json:"labelGroup,omitempty"`
	LanguageCode                string   `json:"languageCode,omitempty"`
	ReplicaCount                int64    `json:"replicaCount,omitempty"`
	ContributorEmails           []string `json:"contributorEmails,omitempty"`
	UserEmailAddress            string   `json:"userEmailAddress,omitempty"`
}

// ImageClassificationConfig configures an image classification task.
type ImageClassificationConfig struct {
	AnnotationSpecSet     string `json:"annotationSpecSet,omitempty"`
	AllowMultiLabel       bool   `json:"allowMultiLabel,omitempty"`
	AnswerAggregationType string `json:"answerAggregationType,omitempty"`
}

// Operation is a long-running operation handle. Labeling task state lives
// server-side; this client only carries the handle back to the caller.
type Operation struct {
	Name     string          `json:"name,omitempty"`
	Done     bool            `json:"done,omitempty"`
	Error    *Status         `json:"error,omitempty"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
	Response json.RawMessage `json:"response,omitempty"`
}

// Status is the error result of a failed operation.
type Status struct {
	Code    int64  `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// DatasetsService provides operations on datasets.
type DatasetsService struct {
	s *Service
}

// Create creates a dataset under parent, in the format
// projects/{project_id}.
func (r *DatasetsService) Create(ctx context.Context, parent string, dataset *Dataset) (*Dataset, error) {
	u := r.s.resolve(parent + "/datasets")
	var created Dataset
	if err := r.s.requester.Do(ctx, http.MethodPost, u, &CreateDatasetRequest{Dataset: dataset}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Get fetches the dataset with the given resource name.
func (r *DatasetsService) Get(ctx context.Context, name string) (*Dataset, error) {
	var ds Dataset
	if err := r.s.requester.Do(ctx, http.MethodGet, r.s.resolve(name), nil, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// List returns one page of datasets under parent. filter, pageSize and
// pageToken follow the API's list conventions; zero values are omitted.
func (r *DatasetsService) List(ctx context.Context, parent, filter string, pageSize int64, pageToken string) (*ListDatasetsResponse, error) {
	u := r.s.resolve(parent+"/datasets") + listQuery(filter, pageSize, pageToken)
	var resp ListDatasetsResponse
	if err := r.s.requester.Do(ctx, http.MethodGet, u, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete deletes the dataset with the given resource name.
func (r *DatasetsService) Delete(ctx context.Context, name string) error {
	return r.s.requester.Do(ctx, http.MethodDelete, r.s.resolve(name), nil, nil)
}

// AnnotatedDatasetsService provides operations on annotated datasets.
type AnnotatedDatasetsService struct {
	s *Service
}

// Get fetches the annotated dataset with the given resource name.
func (r *AnnotatedDatasetsService) Get(ctx context.Context, name string) (*AnnotatedDataset, error) {
	var ad AnnotatedDataset
	if err := r.s.requester.Do(ctx, http.MethodGet, r.s.resolve(name), nil, &ad); err != nil {
		return nil, err
	}
	return &ad, nil
}

// List returns one page of annotated datasets under a dataset, in the
// format projects/{project_id}/datasets/{dataset_id}.
func (r *AnnotatedDatasetsService) List(ctx context.Context, parent, filter string, pageSize int64, pageToken string) (*ListAnnotatedDatasetsResponse, error) {
	u := r.s.resolve(parent+"/annotatedDatasets") + listQuery(filter, pageSize, pageToken)
	var resp ListAnnotatedDatasetsResponse
	if err := r.s.requester.Do(ctx, http.MethodGet, u, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete deletes the annotated dataset with the given resource name.
func (r *AnnotatedDatasetsService) Delete(ctx context.Context, name string) error {
	return r.s.requester.Do(ctx, http.MethodDelete, r.s.resolve(name), nil, nil)
}

// DataItemsService provides read access to a dataset's data items.
type DataItemsService struct {
	s *Service
}

// Get fetches the data item with the given resource name.
func (r *DataItemsService) Get(ctx context.Context, name string) (*DataItem, error) {
	var item DataItem
	if err := r.s.requester.Do(ctx, http.MethodGet, r.s.resolve(name), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns one page of data items under a dataset, in the format
// projects/{project_id}/datasets/{dataset_id}.
func (r *DataItemsService) List(ctx context.Context, parent, filter string, pageSize int64, pageToken string) (*ListDataItemsResponse, error) {
	u := r.s.resolve(parent+"/dataItems") + listQuery(filter, pageSize, pageToken)
	var resp ListDataItemsResponse
	if err := r.s.requester.Do(ctx, http.MethodGet, u, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ImageService starts image labeling tasks.
type ImageService struct {
	s *Service
}

// Label starts a labeling task for the dataset given by parent, in the
// format projects/{project_id}/datasets/{dataset_id}. The task runs
// server-side; the returned operation is its handle.
func (r *ImageService) Label(ctx context.Context, parent string, req *LabelImageRequest) (*Operation, error) {
	u := r.s.resolve(parent + "/image:label")
	var op Operation
	if err := r.s.requester.Do(ctx, http.MethodPost, u, req, &op); err != nil {
		return nil, err
	}
	return &op, nil
}

func listQuery(filter string, pageSize int64, pageToken string) string {
	q := url.Values{}
	if filter != "" {
		q.Set("filter", filter)
	}
	if pageSize > 0 {
		q.Set("pageSize", strconv.FormatInt(pageSize, 10))
	}
	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}
