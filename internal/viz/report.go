package viz

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/sirstab/internal/montecarlo"
)

const reportWidth = 80

// Report writes every panel of res to w as plain text.
func Report(w io.Writer, res *montecarlo.Result) error {
	if res == nil {
		return errors.New("viz: nil result")
	}
	for i, p := range buildPanels(res) {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		header := fmt.Sprintf("== %s %s", p.title, strings.Repeat("=", max(reportWidth-len(p.title)-4, 0)))
		if _, err := fmt.Fprintf(w, "%s\n%s\n", header, strings.TrimRight(p.render(reportWidth, false), "\n")); err != nil {
			return err
		}
	}
	return nil
}
