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

// Package androidpublisher provides access to the Google Play Android
// Developer API.
package androidpublisher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/GoogleCloudPlatform/google-rest-clients/codec"
	"github.com/GoogleCloudPlatform/google-rest-clients/googleclient"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const basePath = "https://androidpublisher.googleapis.com/"

// AndroidPublisherScope grants access to the authenticated user's Google
// Play Developer account.
const AndroidPublisherScope = "https://www.googleapis.com/auth/androidpublisher"

// Service is a client for the Google Play Android Developer API.
type Service struct {
	BasePath string

	Edits             *EditsService
	Images            *ImagesService
	DeviceTierConfigs *DeviceTierConfigsService
	Subscriptions     *SubscriptionsService

	requester googleclient.Requester
}

// NewService creates a new Service with an authenticated client.
func NewService(ctx context.Context, opts ...option.ClientOption) (*Service, error) {
	o := append([]option.ClientOption{option.WithScopes(AndroidPublisherScope)}, opts...)
	c, err := googleclient.NewClient(ctx, o...)
	if err != nil {
		return nil, fmt.Errorf("androidpublisher client: %v", err)
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
	s.Edits = &EditsService{s: s}
	s.Images = &ImagesService{s: s}
	s.DeviceTierConfigs = &DeviceTierConfigsService{s: s}
	s.Subscriptions = &SubscriptionsService{s: s}
	return s
}

func (s *Service) resolve(path string) string {
	return googleapi.ResolveRelative(s.BasePath, "androidpublisher/v3/applications/"+path)
}

func (s *Service) resolveUpload(path string) string {
	return googleapi.ResolveRelative(s.BasePath, "upload/androidpublisher/v3/applications/"+path)
}

// AppEdit is a transaction over an app's Play listing and configuration.
// Changes within an edit are invisible until the edit is committed.
type AppEdit struct {
	// ID identifies the edit in subsequent calls. Output only.
	ID string `json:"id,omitempty"`
	// ExpiryTimeSeconds is when the edit expires, in seconds since the
	// epoch. Output only.
	ExpiryTimeSeconds codec.Int64 `json:"expiryTimeSeconds,omitempty"`
}

// Image is one uploaded listing image.
type Image struct {
	ID     string `json:"id,omitempty"`
	URL    string `json:"url,omitempty"`
	Sha1   string `json:"sha1,omitempty"`
	Sha256 string `json:"sha256,omitempty"`
}

// ImagesListResponse lists all listing images of one type and language.
type ImagesListResponse struct {
	Images []*Image `json:"images,omitempty"`
}

// ImagesUploadResponse carries the image record created by an upload.
type ImagesUploadResponse struct {
	Image *Image `json:"image,omitempty"`
}

// ImagesDeleteAllResponse lists the images removed by a deleteall call.
type ImagesDeleteAllResponse struct {
	Deleted []*Image `json:"deleted,omitempty"`
}

// DeviceTierConfig assigns devices to tiers for app delivery.
type DeviceTierConfig struct {
	// DeviceTierConfigID identifies the config. Output only.
	DeviceTierConfigID codec.Int64    `json:"deviceTierConfigId,omitempty"`
	DeviceGroups       []*DeviceGroup `json:"deviceGroups,omitempty"`
	DeviceTierSet      *DeviceTierSet `json:"deviceTierSet,omitempty"`
}

// DeviceGroup is a named set of devices selected by hardware properties.
type DeviceGroup struct {
	Name            string            `json:"name,omitempty"`
	DeviceSelectors []*DeviceSelector `json:"deviceSelectors,omitempty"`
}

// DeviceSelector matches devices by RAM bounds and device identifiers.
type DeviceSelector struct {
	DeviceRAM         *DeviceRAM  `json:"deviceRam,omitempty"`
	IncludedDeviceIDs []*DeviceID `json:"includedDeviceIds,omitempty"`
	ExcludedDeviceIDs []*DeviceID `json:"excludedDeviceIds,omitempty"`
}

// DeviceRAM bounds a device's RAM in bytes, min inclusive, max exclusive.
type DeviceRAM struct {
	MinBytes codec.Int64 `json:"minBytes,omitempty"`
	MaxBytes codec.Int64 `json:"maxBytes,omitempty"`
}

// DeviceID identifies a device by build brand and build device.
type DeviceID struct {
	BuildBrand  string `json:"buildBrand,omitempty"`
	BuildDevice string `json:"buildDevice,omitempty"`
}

// DeviceTierSet orders device tiers from lowest to highest level.
type DeviceTierSet struct {
	DeviceTiers []*DeviceTier `json:"deviceTiers,omitempty"`
}

// DeviceTier groups device groups under one delivery level.
type DeviceTier struct {
	DeviceGroupNames []string `json:"deviceGroupNames,omitempty"`
	Level            int64    `json:"level,omitempty"`
}

// ListDeviceTierConfigsResponse is one page of device tier configs.
type ListDeviceTierConfigsResponse struct {
	DeviceTierConfigs []*DeviceTierConfig `json:"deviceTierConfigs,omitempty"`
	NextPageToken     string              `json:"nextPageToken,omitempty"`
}

// SubscriptionPurchase is a user's subscription purchase status. All state
// transitions happen server-side; this is a read-only snapshot.
type SubscriptionPurchase struct {
	Kind string `json:"kind,omitempty"`
	// StartTimeMillis is when the subscription was granted, in
	// milliseconds since the epoch.
	StartTimeMillis codec.Int64 `json:"startTimeMillis,omitempty"`
	// ExpiryTimeMillis is when the subscription expires, in milliseconds
	// since the epoch.
	ExpiryTimeMillis     codec.Int64 `json:"expiryTimeMillis,omitempty"`
	AutoRenewing         bool        `json:"autoRenewing,omitempty"`
	PriceCurrencyCode    string      `json:"priceCurrencyCode,omitempty"`
	PriceAmountMicros    codec.Int64 `json:"priceAmountMicros,omitempty"`
	CountryCode          string      `json:"countryCode,omitempty"`
	DeveloperPayload     string      `json:"developerPayload,omitempty"`
	PaymentState         int64       `json:"paymentState,omitempty"`
	OrderID              string      `json:"orderId,omitempty"`
	AcknowledgementState int64       `json:"acknowledgementState,omitempty"`
}

// SubscriptionPurchasesAcknowledgeRequest is the body of an acknowledge
// call.
type SubscriptionPurchasesAcknowledgeRequest struct {
	DeveloperPayload string `json:"developerPayload,omitempty"`
}

// EditsService manages app edit transactions.
type EditsService struct {
	s *Service
}

// Insert opens a new edit for the app. The passed edit may be nil; only
// server-assigned fields are meaningful in the result.
func (r *EditsService) Insert(ctx context.Context, packageName string, edit *AppEdit) (*AppEdit, error) {
	if edit == nil {
		edit = &AppEdit{}
	}
	u := r.s.resolve(packageName + "/edits")
	var created AppEdit
	if err := r.s.requester.Do(ctx, http.MethodPost, u, edit, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Get fetches an open edit.
func (r *EditsService) Get(ctx context.Context, packageName, editID string) (*AppEdit, error) {
	u := r.s.resolve(packageName + "/edits/" + editID)
	var edit AppEdit
	if err := r.s.requester.Do(ctx, http.MethodGet, u, nil, &edit); err != nil {
		return nil, err
	}
	return &edit, nil
}

// Commit commits the edit, making its changes live. When
// changesNotSentForReview is set the changes are saved but not sent for
// review.
func (r *EditsService) Commit(ctx context.Context, packageName, editID string, changesNotSentForReview bool) (*AppEdit, error) {
	u := r.s.resolve(packageName + "/edits/" + editID + ":commit")
	if changesNotSentForReview {
		u += "?changesNotSentForReview=true"
	}
	var edit AppEdit
	if err := r.s.requester.Do(ctx, http.MethodPost, u, nil, &edit); err != nil {
		return nil, err
	}
	return &edit, nil
}

// Validate checks the edit without committing it.
func (r *EditsService) Validate(ctx context.Context, packageName, editID string) (*AppEdit, error) {
	u := r.s.resolve(packageName + "/edits/" + editID + ":validate")
	var edit AppEdit
	if err := r.s.requester.Do(ctx, http.MethodPost, u, nil, &edit); err != nil {
		return nil, err
	}
	return &edit, nil
}

// Delete abandons the edit, discarding its changes.
func (r *EditsService) Delete(ctx context.Context, packageName, editID string) error {
	u := r.s.resolve(packageName + "/edits/" + editID)
	return r.s.requester.Do(ctx, http.MethodDelete, u, nil, nil)
}

// ImagesService manages listing images within an edit.
type ImagesService struct {
	s *Service
}

func (r *ImagesService) listingPath(packageName, editID, language, imageType string) string {
	return packageName + "/edits/" + editID + "/listings/" + language + "/" + imageType
}

// List returns all images of the given type for a language listing.
// imageType is one of the API's image type enum values, e.g. "icon",
// "phoneScreenshots", "featureGraphic".
func (r *ImagesService) List(ctx context.Context, packageName, editID, language, imageType string) (*ImagesListResponse, error) {
	u := r.s.resolve(r.listingPath(packageName, editID, language, imageType))
	var resp ImagesListResponse
	if err := r.s.requester.Do(ctx, http.MethodGet, u, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Upload uploads raw image bytes of the given content type to a language
// listing.
func (r *ImagesService) Upload(ctx context.Context, packageName, editID, language, imageType, contentType string, media io.Reader) (*ImagesUploadResponse, error) {
	u := r.s.resolveUpload(r.listingPath(packageName, editID, language, imageType)) + "?uploadType=media"
	var resp ImagesUploadResponse
	if err := r.s.requester.Upload(ctx, u, contentType, media, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Deleteall removes every image of the given type from a language listing.
func (r *ImagesService) Deleteall(ctx context.Context, packageName, editID, language, imageType string) (*ImagesDeleteAllResponse, error) {
	u := r.s.resolve(r.listingPath(packageName, editID, language, imageType))
	var resp ImagesDeleteAllResponse
	if err := r.s.requester.Do(ctx, http.MethodDelete, u, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeviceTierConfigsService manages device tier configs for an app.
type DeviceTierConfigsService struct {
	s *Service
}

// Create creates a new device tier config for the app.
func (r *DeviceTierConfigsService) Create(ctx context.Context, packageName string, config *DeviceTierConfig) (*DeviceTierConfig, error) {
	u := r.s.resolve(packageName + "/deviceTierConfigs")
	var created DeviceTierConfig
	if err := r.s.requester.Do(ctx, http.MethodPost, u, config, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Get fetches a device tier config by id.
func (r *DeviceTierConfigsService) Get(ctx context.Context, packageName string, deviceTierConfigID int64) (*DeviceTierConfig, error) {
	u := r.s.resolve(packageName + "/deviceTierConfigs/" + strconv.FormatInt(deviceTierConfigID, 10))
	var config DeviceTierConfig
	if err := r.s.requester.Do(ctx, http.MethodGet, u, nil, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// List returns one page of the app's device tier configs, newest first.
func (r *DeviceTierConfigsService) List(ctx context.Context, packageName string, pageSize int64, pageToken string) (*ListDeviceTierConfigsResponse, error) {
	u := r.s.resolve(packageName + "/deviceTierConfigs")
	q := url.Values{}
	if pageSize > 0 {
		q.Set("pageSize", strconv.FormatInt(pageSize, 10))
	}
	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	var resp ListDeviceTierConfigsResponse
	if err := r.s.requester.Do(ctx, http.MethodGet, u, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubscriptionsService checks and acknowledges subscription purchases.
type SubscriptionsService struct {
	s *Service
}

// Get checks whether a user's subscription purchase is valid and returns
// its current state. token is the purchase token issued to the user's
// device; it may contain URL-reserved characters.
func (r *SubscriptionsService) Get(ctx context.Context, packageName, subscriptionID, token string) (*SubscriptionPurchase, error) {
	u := r.s.resolve(packageName + "/purchases/subscriptions/" + subscriptionID + "/tokens/" + url.PathEscape(token))
	var purchase SubscriptionPurchase
	if err := r.s.requester.Do(ctx, http.MethodGet, u, nil, &purchase); err != nil {
		return nil, err
	}
	return &purchase, nil
}

// Acknowledge acknowledges a subscription purchase.
func (r *SubscriptionsService) Acknowledge(ctx context.Context, packageName, subscriptionID, token, developerPayload string) error {
	u := r.s.resolve(packageName + "/purchases/subscriptions/" + subscriptionID + "/tokens/" + url.PathEscape(token) + ":acknowledge")
	body := &SubscriptionPurchasesAcknowledgeRequest{DeveloperPayload: developerPayload}
	return r.s.requester.Do(ctx, http.MethodPost, u, body, nil)
}
