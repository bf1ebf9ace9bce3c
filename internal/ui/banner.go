package ui

import (
	"fmt"
	"strings"

	"github.com/common-nighthawk/go-figure"
)

const bannerFont = "cybermedium"

// Banner renders name as ASCII art, colored with the palette's title style.
func Banner(name string) string {
	art := figure.NewFigure(name, bannerFont, true).String()
	return Styles.Title(strings.TrimRight(art, "\n"))
}

// Line formats a "label: value" startup line with a dimmed label.
func Line(label, value string) string {
	return fmt.Sprintf("%s %s", Styles.Help(label+":"), value)
}
