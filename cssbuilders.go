package mdpress

import (
	"fmt"
	"strings"

	"github.com/alnah/mdpress/internal/pipeline"
)

// buildMarginCSS generates page margin rules with the configured pixel
// value on all four edges. The same value is also handed to the browser's
// print options; the CSS keeps the on-screen rendering consistent.
func buildMarginCSS(marginPixels int) string {
	return fmt.Sprintf(`
/* Page margin: uniform on all four edges */
@page {
  margin-top: %[1]dpx;
  margin-right: %[1]dpx;
  margin-bottom: %[1]dpx;
  margin-left: %[1]dpx;
}
`, marginPixels)
}

// buildCodeThemeCSS generates the token color rules for highlighted code
// from the fixed dark theme table.
func buildCodeThemeCSS() string {
	var buf strings.Builder

	buf.WriteString("\n/* Code theme: dark */\n")
	for _, entry := range pipeline.DarkTheme {
		fmt.Fprintf(&buf, ".code-block .tok-%s { color: %s; }\n", entry.Class, entry.Color)
	}

	return buf.String()
}
