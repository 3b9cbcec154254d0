package utils

import (
	"fmt"
	"strings"
)

//ValidateName rejects empty feature names and names that cannot appear in an
//annotation table row.
func ValidateName(name string) error {
	if name == "" || strings.ContainsAny(name, "\t\n") {
		return fmt.Errorf("invalid feature name %q", name)
	}
	return nil
}
