// internal/app/assign/colors.go
package assign

// palette is the default assignee color cycle, assigned by catalog index to
// teams and profiles that arrive from upstream without a persisted color.
// Persisted colors are canonical and are never overwritten.
var palette = []string{
	"#1f77b4",
	"#ff7f0e",
	"#2ca02c",
	"#d62728",
	"#9467bd",
	"#8c564b",
	"#e377c2",
	"#7f7f7f",
	"#bcbd22",
	"#17becf",
}

// ColorByIndex returns the palette color for the given catalog index,
// cycling when the index exceeds the palette. Negative indexes map to the
// first color.
func ColorByIndex(i int) string {
	if i < 0 {
		i = 0
	}
	return palette[i%len(palette)]
}

// PaletteSize returns the number of distinct palette colors.
func PaletteSize() int { return len(palette) }
