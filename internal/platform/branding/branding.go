// Package branding holds product naming shared by binaries and tools.
package branding

// AppName is the user-facing product name.
const AppName = "Aria Memo"
