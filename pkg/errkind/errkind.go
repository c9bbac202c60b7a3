// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errkind classifies the failures of a cuttercookie run.
//
// Every error that leaves a core package is an *Error carrying one Kind, the
// offending path (when there is one) and the underlying cause. Callers test
// the kind with errors.Is against the sentinel values:
//
//	if errors.Is(err, errkind.ErrEncoding) { ... }
package errkind

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ Kind identifies one class of failure
type Kind string

const (
	KindConfig     Kind = "config"     // unreadable or malformed mapping, invalid pattern
	KindValidation Kind = "validation" // destination precondition violated
	KindEncoding   Kind = "encoding"   // content or name is not valid UTF-8
	KindFileSystem Kind = "filesystem" // read/write/create/traversal failure
	KindPath       Kind = "path"       // entry is not under the source root
)

// Sentinels for errors.Is.
var (
	ErrConfig     = &Error{Kind: KindConfig}
	ErrValidation = &Error{Kind: KindValidation}
	ErrEncoding   = &Error{Kind: KindEncoding}
	ErrFileSystem = &Error{Kind: KindFileSystem}
	ErrPath       = &Error{Kind: KindPath}
)

// ❌ Error is a classified failure
type Error struct {
	Kind Kind
	Path string
	Err  error
}

// Error implements the error interface
func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Path, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s error: %s", e.Kind, e.Path)
	default:
		return fmt.Sprintf("%s error", e.Kind)
	}
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// 🏭 New classifies err. A nil err still produces an error, so callers can
// build kind-only failures with a message via errors.New.
func New(kind Kind, path string, err error) error {
	if err == nil {
		err = errors.New(string(kind))
	}
	return &Error{Kind: kind, Path: path, Err: err}
}

// Config wraps err as a configuration failure
func Config(path string, err error) error {
	return New(KindConfig, path, err)
}

// Validation wraps err as a destination precondition failure
func Validation(path string, err error) error {
	return New(KindValidation, path, err)
}

// Encoding wraps err as an encoding failure
func Encoding(path string, err error) error {
	return New(KindEncoding, path, err)
}

// FileSystem wraps err as a storage failure
func FileSystem(path string, err error) error {
	return New(KindFileSystem, path, err)
}

// Path wraps err as an entry-outside-root failure
func Path(path string, err error) error {
	return New(KindPath, path, err)
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
