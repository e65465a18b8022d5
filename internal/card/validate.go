package card

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidSentence marks input that cannot become card content.
var ErrInvalidSentence = errors.New("invalid sentence")

// ValidateSentenceText checks that the input is usable as card content: not
// blank, and containing at least one letter in some script.
func ValidateSentenceText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: text cannot be empty", ErrInvalidSentence)
	}

	for _, r := range text {
		if unicode.IsLetter(r) {
			return nil
		}
	}

	return fmt.Errorf("%w: text must contain letters", ErrInvalidSentence)
}
