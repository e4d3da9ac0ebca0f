// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// ErrStatusServerDisabled is returned by NewServer when the status API has
// no handler or no listen address.
var ErrStatusServerDisabled = errors.New("status server disabled: no handler or address configured")
