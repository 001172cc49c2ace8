package display

import (
	"fmt"
	"io"

	"github.com/matthew-beep/assetprep/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Paint(term.Magenta, `   __ _  ___ ___  ___| |_ _ __  _ __ ___ _ __
  / _`+"`"+` |/ __/ __|/ _ \ __| '_ \| '__/ _ \ '_ \
 | (_| |\__ \__ \  __/ |_| |_) | | |  __/ |_) |
  \__,_||___/___/\___|\__| .__/|_|  \___| .__/
                         |_|            |_|
`))
}
