package openscad

import (
	"bufio"
	"io"
	"regexp"
)

// BenignWarning is printed by OpenSCAD whenever a script sets $vp* while
// --viewall/--autocenter are in effect. It never indicates a broken model.
//
// The match is tied to this exact wording; a renderer release that
// rephrases it will turn every such run into a warning failure.
const BenignWarning = "WARNING: Viewall and autocenter disabled in favor of $vp*"

var (
	warningRe = regexp.MustCompile(`^WARNING:`)
	benignRe  = regexp.MustCompile(`^` + regexp.QuoteMeta(BenignWarning))
)

// IsDisqualifying reports whether a captured line is a warning that must
// fail the run: it starts with "WARNING:" and is not [BenignWarning].
func IsDisqualifying(line string) bool {
	return warningRe.MatchString(line) && !benignRe.MatchString(line)
}

// Classify derives the status of a terminated run. A non-zero exit code
// always fails; otherwise any disqualifying line fails the run.
func Classify(exitCode int, lines []string) Status {
	if exitCode != 0 {
		return StatusExitFailure
	}
	for _, line := range lines {
		if IsDisqualifying(line) {
			return StatusWarningFailure
		}
	}
	return StatusSuccess
}

// ReadLines reads r line by line.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// ScanWarnings returns the disqualifying lines read from r, in order.
func ScanWarnings(r io.Reader) ([]string, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, err
	}
	var warnings []string
	for _, line := range lines {
		if IsDisqualifying(line) {
			warnings = append(warnings, line)
		}
	}
	return warnings, nil
}
