/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package api

import "context"

// SourceReader reads a named source (a file path for the default
// implementation) in full.
type SourceReader interface {
	ReadSource(ctx context.Context, name string) ([]byte, error)
}
