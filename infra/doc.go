// Package infra contains technical adapters such as the simplex-based
// branch-and-bound solver and metrics exporters. These packages should
// depend only on the interfaces defined in the core packages.
package infra
