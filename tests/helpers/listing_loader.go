package helpers

import (
	"bufio"
	"os"
	"strings"
)

// ListingLine is one line of a golden listing.
type ListingLine struct {
	Number int    // 1-based line number in the file
	Text   string // line text without the trailing newline
	Debug  bool   // an "; Offset 0x.." line
}

// LoadListing reads a golden .lst file. Blank lines and '#' lines are skipped so fixtures
// can carry notes.
func LoadListing(path string) ([]ListingLine, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []ListingLine
	scanner := bufio.NewScanner(file)
	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimRight(scanner.Text(), "\r")
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, ListingLine{
			Number: n,
			Text:   text,
			Debug:  strings.HasPrefix(text, "; Offset 0x"),
		})
	}
	return lines, scanner.Err()
}

// Texts returns the listing text, optionally without debug lines.
func Texts(lines []ListingLine, withDebug bool) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.Debug && !withDebug {
			continue
		}
		out = append(out, l.Text)
	}
	return out
}
