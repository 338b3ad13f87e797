package timing

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Strategy selects which point of a cue's interval maps onto the
// horizontal axis.
type Strategy int

const (
	End Strategy = iota
	Start
	Middle
)

var strategyNames = map[Strategy]string{
	Start:  "start",
	End:    "end",
	Middle: "middle",
}

// Strategies lists the accepted names in help order.
var Strategies = []string{"start", "end", "middle"}

// ParseStrategy maps "start", "end" or "middle" to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for st, n := range strategyNames {
		if n == name {
			return st, nil
		}
	}
	return End, fmt.Errorf("invalid timecode strategy %q, must be one of %s", s, strings.Join(Strategies, ", "))
}

func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Set implements pflag.Value.
func (s *Strategy) Set(v string) error {
	st, err := ParseStrategy(v)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Type implements pflag.Value.
func (s *Strategy) Type() string {
	return "strategy"
}

func (s Strategy) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

func (s *Strategy) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	return s.Set(name)
}
