package names

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/rand"
	"k8s.io/apimachinery/pkg/util/validation"
)

const randomSuffixLength = 5

// Generator generates a unique object name from a base name
type Generator func(base string) string

// NewJobName appends a random suffix to base, keeping the result a valid DNS-1123 label
func NewJobName(base string) string {
	return fmt.Sprintf("%s-%s", getBaseNamePart(base), rand.String(randomSuffixLength))
}

func getBaseNamePart(base string) string {
	maxLength := validation.DNS1123LabelMaxLength - randomSuffixLength - 1
	if len(base) > maxLength {
		base = base[:maxLength]
	}
	return strings.TrimRight(base, "-")
}
