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

package codec

import (
	"encoding/json"
	"fmt"
	"time"
)

// Int64 is a 64-bit integer that marshals as a quoted decimal string, the
// wire form Google APIs use for int64 fields.
type Int64 int64

// MarshalJSON implements json.Marshaler.
func (n Int64) MarshalJSON() ([]byte, error) {
	return json.Marshal(FormatInt64(int64(n)))
}

// UnmarshalJSON implements json.Unmarshaler. Only a quoted decimal string
// is accepted; anything else surfaces as a parse error.
func (n *Int64) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("int64 field must be a decimal string: %v", err)
	}
	v, err := ParseInt64(s)
	if err != nil {
		return err
	}
	*n = Int64(v)
	return nil
}

// Bytes is a byte buffer that marshals as a standard base64 string.
type Bytes []byte

// MarshalJSON implements json.Marshaler.
func (b Bytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(EncodeBytes(b))
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Bytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("bytes field must be a base64 string: %v", err)
	}
	decoded, err := DecodeBytes(s)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

// Timestamp is a point in time that marshals as an RFC 3339 UTC string.
// Optional fields should be declared *Timestamp so omitempty applies.
type Timestamp time.Time

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(FormatTime(time.Time(t)))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp field must be an RFC 3339 string: %v", err)
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

// Time returns the wrapped time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// NewTimestamp wraps t for use in an optional API field.
func NewTimestamp(t time.Time) *Timestamp {
	ts := Timestamp(t)
	return &ts
}
