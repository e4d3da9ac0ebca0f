// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"
)

var (
	// ErrRemote matches every failure of a remote call.
	ErrRemote = errors.New("remote error")

	ErrUnauthorized = errors.New("remote unauthorized")
	ErrNotFound     = errors.New("remote resource not found")
)

// RemoteError describes a failed remote call. Status is zero for transport
// failures, in which case Err holds the cause.
type RemoteError struct {
	Op      string
	Status  int
	Body    string
	Timeout bool
	Err     error
}

func (e *RemoteError) Error() string {
	msg := e.Op + ": " + ErrRemote.Error()
	if e.Timeout {
		msg += ": timeout"
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(": http %d", e.Status)
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes ErrRemote, the sentinel matching Status (if any) and the
// transport cause to errors.Is and errors.As.
func (e *RemoteError) Unwrap() []error {
	errs := []error{ErrRemote}
	if sentinel := statusSentinel(e.Status); sentinel != nil {
		errs = append(errs, sentinel)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
