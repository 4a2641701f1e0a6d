package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName recorta espacios y lleva el nombre a forma NFC, para que
// "Café" escrito con tilde combinada y con tilde precompuesta sean el mismo
// nombre en las restricciones de unicidad.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// NormalizeNames normaliza y descarta vacíos y repetidos, conservando el orden
// de primera aparición.
func NormalizeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = NormalizeName(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
