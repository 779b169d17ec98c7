// Command manifest-convert converts a CSV manifest into the primary JSON
// manifest format, applying the same normalization pipeline the gallery
// service runs at load time.
package main
