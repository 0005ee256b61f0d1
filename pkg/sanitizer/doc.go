// Package sanitizer normalizes user supplied text before it is validated and
// stored. Transforms are plain func(string) string values and compose with
// Apply and Compose.
package sanitizer
