// Package textutil provides small string helpers shared by the mapper, the
// destination payload builder, and the console log formatter: rune-safe hard
// truncation and placeholder substitution for blank values.
package textutil
