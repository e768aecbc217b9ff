package input

// HelpLines describes the default keymap, one binding per line.
func HelpLines() []string {
	return []string{
		"arrows        pan",
		"a / =         zoom in",
		"z / -         zoom out",
		"A Z           continuous zoom",
		"[ ]           rotate",
		"click         center on point",
		"wheel         zoom",
		"1-9 0         tour point of interest",
		"e             toggle autoexposure",
		"space         stop",
		"r             reset view",
		"tab           switch mandelbrot/julia",
		"h ?           toggle help",
		"q esc         quit",
	}
}
