package config

import (
	yaml "gopkg.in/yaml.v3"
)

// Specification of image resizing mode.
// ENUM(none, keepAR, stretch)
type ImageResizeMode int

// Specification of requested slide image format.
// ENUM(png, jpeg)
type OutputFmt int

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtPng:
		return ".png"
	case OutputFmtJpeg:
		return ".jpeg"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// Specification of built-in slide background theme.
// ENUM(warm, paper, gradient, night)
type ThemeStyle int

// yaml.v3 ignores encoding.TextUnmarshaler when decoding, so configuration
// enums need explicit support to be readable by name.

func (x *ImageResizeMode) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	return x.UnmarshalText([]byte(name))
}

func (x *OutputFmt) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	return x.UnmarshalText([]byte(name))
}

func (x *ThemeStyle) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	return x.UnmarshalText([]byte(name))
}
