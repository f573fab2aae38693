/*
Package abdesigner is a library for editing small layered bitmaps such as
the status bar icon sets of a monochrome display.

A Document holds an ordered stack of Layers, each a positioned plane of
Black, White or Transparent pixels. Documents are stored as JSON with each
plane packed by the column package.
*/
package abdesigner

import (
	"github.com/bodgit/abdesigner/column"
	"github.com/bodgit/abdesigner/plane"
	"github.com/pkg/errors"
)

var (
	// ErrOutOfBounds is returned when a coordinate lies outside a plane
	ErrOutOfBounds = plane.ErrOutOfBounds
	// ErrCorruptData is returned when a stored document cannot be decoded
	ErrCorruptData = column.ErrCorruptData
	// ErrNoSuchLayer is returned for a layer index outside the document
	ErrNoSuchLayer = errors.New("no such layer")
)
