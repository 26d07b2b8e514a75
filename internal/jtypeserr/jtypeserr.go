// Copyright (c) 2023 Uber Technologies, Inc.
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

// Package jtypeserr defines the error taxonomy shared by every core
// package. Each category is its own type so that callers can recover
// it with errors.As instead of matching on message text.
package jtypeserr

import "fmt"

// InvalidArgument is returned when a caller supplies a Type or element
// value that was not produced by this implementation, or a value that
// otherwise violates a constructor's documented preconditions (empty
// intersection bounds, an out-of-range primitive/no-type kind, a
// boxed-type lookup on a non-boxed declared type).
type InvalidArgument struct {
	Op  string
	Msg string
}

func (e *InvalidArgument) Error() string {
	return fmt.Sprintf("%s: invalid argument: %s", e.Op, e.Msg)
}

// MissingOperand is returned when a required input was nil or absent
// and the operation does not document null tolerance for it.
type MissingOperand struct {
	Op  string
	Msg string
}

func (e *MissingOperand) Error() string {
	return fmt.Sprintf("%s: missing operand: %s", e.Op, e.Msg)
}

// IllegalState is returned when a TypeVariable's bounds are read
// before being frozen, or an attempt is made to freeze them twice.
type IllegalState struct {
	Op  string
	Msg string
}

func (e *IllegalState) Error() string {
	return fmt.Sprintf("%s: illegal state: %s", e.Op, e.Msg)
}

// Unsupported is returned when an operation meets a type form it does
// not handle: IsSubtype with a Void or None operand, and String on an
// unrecognized form. No operation returns it for method or constructor
// type parameters, and direct-supertype enumeration
// (hierarchy.DirectSupertypes) is a working operation, not an
// Unsupported one.
type Unsupported struct {
	Op  string
	Msg string
}

func (e *Unsupported) Error() string {
	return fmt.Sprintf("%s: unsupported: %s", e.Op, e.Msg)
}

// Provider wraps an error returned by a caller-supplied decl.Provider
// so that a provider failure is distinguishable from a failure in the
// core's own algorithms.
type Provider struct {
	Op  string
	Err error
}

func (e *Provider) Error() string {
	return fmt.Sprintf("%s: declaration provider failed: %v", e.Op, e.Err)
}

func (e *Provider) Unwrap() error {
	return e.Err
}
