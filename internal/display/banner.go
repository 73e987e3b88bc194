package display

import (
	"fmt"
	"io"

	"github.com/backmassage/mediacompress/internal/term"
)

// PrintBanner prints the startup banner and version; uses Bold if colors are
// enabled.
func PrintBanner(w io.Writer, version string) {
	fmt.Fprint(w, term.Bold)
	fmt.Fprint(w, `                   _ _
 _ __ ___   ___  __| (_) __ _  ___ ___  _ __ ___  _ __  _ __ ___  ___ ___
| '_ `+"`"+` _ \ / _ \/ _`+"`"+` | |/ _`+"`"+` |/ __/ _ \| '_ `+"`"+` _ \| '_ \| '__/ _ \/ __/ __|
| | | | | |  __/ (_| | | (_| | (_| (_) | | | | | | |_) | | |  __/\__ \__ \
|_| |_| |_|\___|\__,_|_|\__,_|\___\___/|_| |_| |_| .__/|_|  \___||___/___/
                                                 |_|
`)
	fmt.Fprint(w, term.NC)
	if version != "" {
		fmt.Fprintf(w, "version %s\n", version)
	}
	fmt.Fprintln(w)
}
