// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/h2non/filetype"
	"github.com/pierrec/lz4/v4"
)

// lz4Type is the lz4 frame format, which filetype does not know about.
var lz4Type = filetype.NewType("lz4", "application/x-lz4")

func init() {
	filetype.AddMatcher(lz4Type, func(buf []byte) bool {
		return len(buf) >= 4 && buf[0] == 0x04 && buf[1] == 0x22 && buf[2] == 0x4d && buf[3] == 0x18
	})
}

// Decompress returns data decompressed if its content is gzip, bzip2 or
// lz4 compressed, and data itself otherwise.
func Decompress(data []byte) ([]byte, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return data, nil
	}
	var r io.Reader
	switch kind.Extension {
	case "gz":
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer zr.Close()
		r = zr
	case "bz2":
		r = bzip2.NewReader(bytes.NewReader(data))
	case lz4Type.Extension:
		r = lz4.NewReader(bytes.NewReader(data))
	default:
		return data, nil
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", kind.Extension, err)
	}
	return out, nil
}
