// Package index provides a page-local spatial index of rectangular objects.
// It is built once after the content-stream walker finishes and then queried
// many times during extraction; there is no removal and no locking.
package index
