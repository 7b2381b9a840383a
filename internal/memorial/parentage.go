package memorial

import "strings"

// Parentage holds the components heuristically extracted from a composite
// name. All fields may be empty; absence of a marker is not an error.
type Parentage struct {
	FatherName string
	MotherName string
	Gender     Gender
}

// sonMarkers and daughterMarkers are the exact tokens that introduce a
// parent name inside a composite name. In memorial usage the name after
// either marker identifies the father.
var (
	sonMarkers      = []string{"בן", "בר", "ben"}
	daughterMarkers = []string{"בת", "bat"}
)

// mixedParentSeparators split a legacy father field holding both parents,
// e.g. "יוסף וזהבה". Order matters: the explicit ו- form wins over the
// bare conjunction.
var mixedParentSeparators = []string{" ו-", " ו", ", "}

// ExtractParentage scans the whitespace tokens of name for a parentage
// marker. The marker must be an exact token, not a substring, must not be
// the first token, and must be followed by at least one token; everything
// after it becomes the parent name. A son marker implies male, a daughter
// marker female.
func ExtractParentage(name string) Parentage {
	tokens := strings.Fields(name)
	for i := 1; i < len(tokens)-1; i++ {
		if isMarker(tokens[i], sonMarkers) {
			return Parentage{
				FatherName: strings.Join(tokens[i+1:], " "),
				Gender:     GenderMale,
			}
		}
		if isMarker(tokens[i], daughterMarkers) {
			return Parentage{
				FatherName: strings.Join(tokens[i+1:], " "),
				Gender:     GenderFemale,
			}
		}
	}
	return Parentage{}
}

// SplitMixedParents splits a father field that holds both parents joined by
// a conjunction. Returns the separated names and true, or the input and
// false when no separator yields exactly two non-empty parts.
func SplitMixedParents(father string) (string, string, bool) {
	for _, sep := range mixedParentSeparators {
		if !strings.Contains(father, sep) {
			continue
		}
		parts := strings.SplitN(father, sep, 2)
		left := strings.TrimSpace(parts[0])
		right := strings.TrimSpace(parts[1])
		if left != "" && right != "" {
			return left, right, true
		}
		break
	}
	return father, "", false
}

func isMarker(token string, markers []string) bool {
	for _, m := range markers {
		if token == m {
			return true
		}
	}
	return false
}
