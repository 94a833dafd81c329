// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Decoder is an interface for standard decoder types
type Decoder interface {
	// Decode decodes from io.Reader specified at creation
	Decode(v any) error
}

// DecoderFunc is a function that creates a new Decoder for given reader
type DecoderFunc func(r io.Reader) Decoder

// NewDecoderFunc returns a DecoderFunc for a specific Decoder type
func NewDecoderFunc[T Decoder](f func(r io.Reader) T) DecoderFunc {
	return func(r io.Reader) Decoder { return f(r) }
}

// Encoder is an interface for standard encoder types
type Encoder interface {
	// Encode encodes to io.Writer specified at creation
	Encode(v any) error
}

// EncoderFunc is a function that creates a new Encoder for given writer
type EncoderFunc func(w io.Writer) Encoder

// NewEncoderFunc returns a EncoderFunc for a specific Encoder type
func NewEncoderFunc[T Encoder](f func(w io.Writer) T) EncoderFunc {
	return func(w io.Writer) Encoder { return f(w) }
}

// Format is a config file encoding.
type Format struct {
	Name    string
	Decoder DecoderFunc
	Encoder EncoderFunc
}

var (
	TOML = Format{"toml", NewDecoderFunc(toml.NewDecoder), NewEncoderFunc(toml.NewEncoder)}
	YAML = Format{"yaml", NewDecoderFunc(yaml.NewDecoder), NewEncoderFunc(yaml.NewEncoder)}
)

// Formats are the known formats by file extension.
var Formats = map[string]Format{
	".toml": TOML,
	".yaml": YAML,
	".yml":  YAML,
}

// FormatOf returns the format of the given file name from its extension.
func FormatOf(filename string) (Format, error) {
	f, ok := Formats[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return Format{}, fmt.Errorf("config: unknown format of %q (want .toml, .yaml or .yml)", filename)
	}
	return f, nil
}

// Open reads object from the given filename, in the format of its extension.
func Open(v any, filename string) error {
	f, err := FormatOf(filename)
	if err != nil {
		return err
	}
	fp, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	return Read(v, bufio.NewReader(fp), f.Decoder)
}

// OpenFS reads object from the given filename using the fs.FS filesystem
// (e.g., for embed files), in the format of its extension.
func OpenFS(v any, fsys fs.FS, filename string) error {
	f, err := FormatOf(filename)
	if err != nil {
		return err
	}
	fp, err := fsys.Open(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	return Read(v, bufio.NewReader(fp), f.Decoder)
}

// Read reads object encoding from the given reader,
// using the given [DecoderFunc]
func Read(v any, reader io.Reader, f DecoderFunc) error {
	d := f(reader)
	return d.Decode(v)
}

// ReadBytes reads object encoding from the given bytes,
// using the given [DecoderFunc]
func ReadBytes(v any, data []byte, f DecoderFunc) error {
	b := bytes.NewBuffer(data)
	return Read(v, b, f)
}

// Write writes object encoding to the given writer, using the given
// [EncoderFunc]. Encoders that buffer are closed to flush them.
func Write(v any, writer io.Writer, f EncoderFunc) error {
	e := f(writer)
	if err := e.Encode(v); err != nil {
		return err
	}
	if c, ok := e.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// WriteBytes returns the encoding of the object, using the given [EncoderFunc].
func WriteBytes(v any, f EncoderFunc) ([]byte, error) {
	var b bytes.Buffer
	err := Write(v, &b, f)
	return b.Bytes(), err
}

// Save writes object to the given filename, in the format of its extension.
func Save(v any, filename string) error {
	f, err := FormatOf(filename)
	if err != nil {
		return err
	}
	data, err := WriteBytes(v, f.Encoder)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}
