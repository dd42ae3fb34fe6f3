package utils

import "fmt"

// Returns the integer average of n (0 for no arguments)
func Average(n ...int) int {
	if len(n) == 0 {
		return 0
	}

	var sum int
	for _, num := range n {
		sum += num
	}
	return sum / len(n)
}

// Wraps block in a 24-bit ANSI background color escape
func ColoredBlock(block string, red int, green int, blue int) string {
	return fmt.Sprintf("\033[48;2;%d;%d;%dm%s\033[0m", red, green, blue, block)
}

// FitWithin scales width x height down to fit maxWidth x maxHeight, keeping
// the aspect ratio. Dimensions already inside the box are returned unchanged
// and results are never smaller than 1.
func FitWithin(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}

	// Compare width/maxWidth against height/maxHeight without floats
	if width*maxHeight >= height*maxWidth {
		return maxWidth, max(1, height*maxWidth/width)
	}
	return max(1, width*maxHeight/height), maxHeight
}
