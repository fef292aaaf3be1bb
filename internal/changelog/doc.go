// Package changelog turns the commits of a release into a Markdown changelog.
//
// This package implements:
//   - classification of commit subjects by conventional prefix (feat:, fix:, docs:)
//   - rendering of the classified groups as a Markdown document
//   - release orchestration over a RevisionHistory (previous release lookup and comparison)
//
// Rendering is pure; all remote or repository access happens behind RevisionHistory.
package changelog
