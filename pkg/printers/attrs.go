package printers

import "github.com/fatih/color"

var (
	boldUnderline = []color.Attribute{color.Bold, color.Underline}
	faint         = []color.Attribute{color.Faint}
	faintItalic   = []color.Attribute{color.Faint, color.Italic}
	idAttrs       = []color.Attribute{color.FgHiYellow, color.Italic, color.Faint}
	okAttrs       = []color.Attribute{color.FgGreen}
	highlight     = []color.Attribute{color.Bold, color.FgHiCyan}
)
