package envfile

import (
	"fmt"
	"os"
	"sort"

	"github.com/joho/godotenv"
)

// Parse reads KEY=value pairs from document content. Comment lines are ignored.
func Parse(content string) (map[string]string, error) {
	values, err := godotenv.Unmarshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse env document: %w", err)
	}
	return values, nil
}

// ParseFile reads and parses an env file from disk.
func ParseFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// Placeholders returns, sorted, the keys whose value is still the fallback
// placeholder written for a credential that was never collected.
func Placeholders(values map[string]string) []string {
	var out []string
	for key, placeholder := range placeholders {
		if v, ok := values[key]; ok && v == placeholder {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}
