/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package loader

import (
	"fmt"
)

// ErrSourceUnavailable represents errors opening a source: a missing or
// unreadable file, a cancelled context, a failed query.
type ErrSourceUnavailable struct {
	Msg string
	Err error
}

// ErrMalformedInput represents a source that was read but could not be
// parsed into a table.
type ErrMalformedInput struct {
	Msg string
	Err error
}

func (e *ErrSourceUnavailable) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("source unavailable: %s", e.Msg)
	}
	return fmt.Sprintf("source unavailable: %s: %v", e.Msg, e.Err)
}

func (e *ErrSourceUnavailable) Unwrap() error {
	return e.Err
}

func (e *ErrMalformedInput) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed input: %s", e.Msg)
	}
	return fmt.Sprintf("malformed input: %s: %v", e.Msg, e.Err)
}

func (e *ErrMalformedInput) Unwrap() error {
	return e.Err
}
