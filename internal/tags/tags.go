// Package tags handles resource tags given as key=value pairs.
package tags

import (
	"errors"
	"sort"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"

	"github.com/Lukas-Klein/azure-config-cli/internal/validate"
)

// Tags maps tag names to values.
type Tags map[string]string

// Parse reads "key=value" pairs. A pair without "=" gets an empty value;
// an empty key is rejected. Later pairs overwrite earlier ones.
func Parse(parameter string, pairs []string) (Tags, error) {
	t := make(Tags, len(pairs))
	for _, pair := range pairs {
		key, value, _ := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, &validate.InvalidValueError{
				Parameter: parameter,
				Value:     pair,
				Err:       errors.New("tag name must not be empty"),
			}
		}
		t[key] = strings.TrimSpace(value)
	}
	return t, nil
}

// Keys returns the tag names in sorted order.
func (t Tags) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ARM returns the tags in the shape the Azure SDK models use.
func (t Tags) ARM() map[string]*string {
	out := make(map[string]*string, len(t))
	for k, v := range t {
		out[k] = to.Ptr(v)
	}
	return out
}
