package objects

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rhyn0/oxide-git/internal/constants"
)

// Signature represents commit author/committer.
// When carries both the instant and the UTC offset it was recorded in.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

func (s Signature) String() string {
	return fmt.Sprintf("%s <%s>", s.Name, s.Email)
}

func (s Signature) validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("signature name must not be empty")
	}
	if strings.ContainsAny(s.Name, "<>\n") {
		return fmt.Errorf("signature name %q contains reserved characters", s.Name)
	}
	if strings.ContainsAny(s.Email, "<> \t\n") {
		return fmt.Errorf("signature email %q contains reserved characters", s.Email)
	}
	return nil
}

// line renders "<prefix><name> <<email>> <epoch> <±HHMM>".
func (s Signature) line(prefix string) string {
	_, offset := s.When.Zone()
	name := strings.Join(strings.Fields(s.Name), " ")
	return fmt.Sprintf("%s%s <%s> %d %s", prefix, name, s.Email, s.When.Unix(), formatTimezone(offset))
}

func formatTimezone(offset int) string {
	// offset is in seconds, convert to ±HHMM format
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	hours := offset / constants.SecondsPerHour
	minutes := (offset % constants.SecondsPerHour) / constants.SecondsPerMinute
	return fmt.Sprintf("%c%02d%02d", sign, hours, minutes)
}

func parseTimezone(tz string) (*time.Location, error) {
	if len(tz) != 5 || (tz[0] != '+' && tz[0] != '-') {
		return nil, fmt.Errorf("malformed timezone %q", tz)
	}
	for _, c := range tz[1:] {
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("malformed timezone %q", tz)
		}
	}
	hours, err := strconv.Atoi(tz[1:3])
	if err != nil {
		return nil, fmt.Errorf("malformed timezone %q", tz)
	}
	minutes, err := strconv.Atoi(tz[3:5])
	if err != nil || minutes >= 60 {
		return nil, fmt.Errorf("malformed timezone %q", tz)
	}
	offset := hours*constants.SecondsPerHour + minutes*constants.SecondsPerMinute
	if tz[0] == '-' {
		offset = -offset
	}
	return time.FixedZone("", offset), nil
}

// parseSignature splits an author/committer line on whitespace:
// the prefix word, one or more name tokens, <email>, epoch seconds and the UTC offset.
func parseSignature(line string) (Signature, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 5 {
		return Signature{}, errors.Wrapf(ErrMalformedCommit, "signature line %q has %d fields, need at least 5", line, len(tokens))
	}

	n := len(tokens)
	email := tokens[n-3]
	if !strings.HasPrefix(email, "<") || !strings.HasSuffix(email, ">") {
		return Signature{}, errors.Wrapf(ErrMalformedCommit, "malformed email in %q", line)
	}

	epoch, err := strconv.ParseInt(tokens[n-2], 10, 64)
	if err != nil {
		return Signature{}, errors.Wrapf(ErrMalformedCommit, "malformed timestamp in %q", line)
	}

	location, err := parseTimezone(tokens[n-1])
	if err != nil {
		return Signature{}, malformedCommit(err)
	}

	return Signature{
		Name:  strings.Join(tokens[1:n-3], " "),
		Email: strings.TrimSuffix(strings.TrimPrefix(email, "<"), ">"),
		When:  time.Unix(epoch, 0).In(location),
	}, nil
}
