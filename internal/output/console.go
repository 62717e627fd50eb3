package output

import (
	"fmt"
	"os"
)

// ConsoleDestination prints audit messages to stdout, one per line, prefixed
// with the topic. It is the default destination.
type ConsoleDestination struct{}

func (c *ConsoleDestination) WriteMessage(topic string, msg []byte) error {
	if _, err := fmt.Fprintf(os.Stdout, "[%s] %s\n", topic, msg); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return nil
}

func (c *ConsoleDestination) Close() error {
	return nil
}
