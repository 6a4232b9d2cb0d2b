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

// Package codec converts between the wire representations Google JSON APIs
// use for fields that don't survive a plain JSON round trip and their
// in-memory Go values: 64-bit integers travel as decimal strings (JSON
// numbers lose precision above 2^53), byte buffers travel as base64 text,
// and timestamps travel as RFC 3339 strings in UTC.
package codec

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"time"
)

// EncodeBytes renders b as RFC 4648 standard base64 with padding.
// The empty slice encodes to the empty string.
func EncodeBytes(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeBytes is the inverse of EncodeBytes. Input is expected to be
// well-formed, padded base64; malformed text returns a decode error.
func DecodeBytes(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

// FormatInt64 renders n as its base-10 string, the representation Google
// APIs use for all 64-bit quantities.
func FormatInt64(n int64) string {
	return strconv.FormatInt(n, 10)
}

// ParseInt64 parses a decimal string back into an int64. A non-numeric
// string is an error, never a silent coercion.
func ParseInt64(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid int64 value %q: %v", s, err)
	}
	return n, nil
}

// FormatTime renders t as RFC 3339 with the UTC designator. Sub-second
// precision is preserved when present.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTime parses an RFC 3339 string into a time.Time. The APIs always
// send UTC, so no timezone ambiguity exists.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %v", s, err)
	}
	return t, nil
}
