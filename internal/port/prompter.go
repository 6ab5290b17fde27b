package port

import "context"

// Prompter asks the operator yes/no questions.
type Prompter interface {
	// Confirm blocks until the operator answers. Anything but an explicit yes
	// is a no.
	Confirm(ctx context.Context, prompt string) (bool, error)
}
