// Package featab provides support for parsing feature table files: one
// feature per line as "<name><TAB><location>[<TAB><note>]", where the
// location uses the canonical text form of the locations package. Blank
// lines and lines starting with # are ignored.
package featab

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/googlegenomics/locget/locations"
)

// Feature is one named row of a feature table.
type Feature struct {
	Name     string
	Location locations.Location
	Note     string
}

// NotFoundError reports that a named feature is absent from a table.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("feature %q not found", e.Name)
}

// Read parses an entire feature table. Duplicate names are kept in file
// order.
func Read(r io.Reader) ([]Feature, error) {
	var features []Feature
	scanner := bufio.NewScanner(r)
	var line int
	for scanner.Scan() {
		line++
		feature, ok, err := parseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", line, err)
		}
		if ok {
			features = append(features, feature)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading table: %v", err)
	}
	return features, nil
}

// Lookup returns the location of the first feature called name, without
// parsing the locations of any other row.
func Lookup(r io.Reader, name string) (locations.Location, error) {
	scanner := bufio.NewScanner(r)
	var line int
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if skippable(text) || strings.SplitN(text, "\t", 2)[0] != name {
			continue
		}
		feature, _, err := parseLine(text)
		if err != nil {
			return locations.Location{}, fmt.Errorf("line %d: %v", line, err)
		}
		return feature.Location, nil
	}
	if err := scanner.Err(); err != nil {
		return locations.Location{}, fmt.Errorf("reading table: %v", err)
	}
	return locations.Location{}, &NotFoundError{Name: name}
}

func parseLine(text string) (Feature, bool, error) {
	if skippable(text) {
		return Feature{}, false, nil
	}
	fields := strings.SplitN(text, "\t", 3)
	if len(fields) < 2 {
		return Feature{}, false, fmt.Errorf("feature %q has no location", fields[0])
	}
	loc, err := locations.Parse(fields[1])
	if err != nil {
		return Feature{}, false, err
	}
	feature := Feature{Name: fields[0], Location: loc}
	if len(fields) == 3 {
		feature.Note = fields[2]
	}
	return feature, true, nil
}

func skippable(text string) bool {
	trimmed := strings.TrimSpace(text)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}
