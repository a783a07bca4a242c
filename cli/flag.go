package cli

import (
	"strconv"

	"github.com/morikuni/failure/v2"
	"github.com/spf13/pflag"
)

// countFlag is a positive integer flag that remembers whether it was given,
// so configuration is only overridden on request.
type countFlag struct {
	IsSet bool
	Value int
}

// String implements pflag.Value.
func (c *countFlag) String() string {
	if !c.IsSet {
		return ""
	}
	return strconv.Itoa(c.Value)
}

func (c *countFlag) Set(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return failure.New(InvalidArguments,
			failure.Message("must be a positive integer"),
			failure.Context{"value": value},
		)
	}
	c.Value = n
	c.IsSet = true
	return nil
}

func (c *countFlag) Type() string {
	return "count"
}

var _ pflag.Value = &countFlag{}
