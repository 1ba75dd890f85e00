package stderr

import (
	"bufio"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// forward logs every non-blank line read from r until EOF.
func forward(r io.Reader, log zerolog.Logger) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			log.Warn().Msg(line)
		}
	}
}
