package plot

// category20c is the 20 colour categorical palette used by the dashboard.
var category20c = []string{
	"#3182bd", "#6baed6", "#9ecae1", "#c6dbef",
	"#e6550d", "#fd8d3c", "#fdae6b", "#fdd0a2",
	"#31a354", "#74c476", "#a1d99b", "#c7e9c0",
	"#756bb1", "#9e9ac8", "#bcbddc", "#dadaeb",
	"#636363", "#969696", "#bdbdbd", "#d9d9d9",
}

// Palette returns n colours of the categorical palette, wrapping around past
// its size.
func Palette(n int) []string {
	colors := make([]string, n)
	for i := range colors {
		colors[i] = category20c[i%len(category20c)]
	}
	return colors
}
