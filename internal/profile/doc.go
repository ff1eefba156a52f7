// Package profile holds the framework-agnostic state behind the profile screen:
// grid layout, per-username tab selection, proof ordering and the typed props the
// screen is rendered from.
package profile
