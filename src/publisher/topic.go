package publisher

import (
	"fmt"
	"regexp"
)

const maxTopicLength = 249

var legalTopicChars = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// ValidateTopic applies the broker's topic naming rules.
func ValidateTopic(topic string) error {
	switch {
	case topic == "":
		return fmt.Errorf("%w: empty", ErrInvalidTopic)
	case topic == "." || topic == "..":
		return fmt.Errorf("%w: %q is reserved", ErrInvalidTopic, topic)
	case len(topic) > maxTopicLength:
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidTopic, maxTopicLength)
	case !legalTopicChars.MatchString(topic):
		return fmt.Errorf("%w: %q contains characters other than [a-zA-Z0-9._-]", ErrInvalidTopic, topic)
	}
	return nil
}
