package console

import (
	"fmt"
	"strings"
)

// Runner executes console commands programmatically, the way an operator
// would type them.
type Runner struct {
	opts Options
}

func NewRunner(opts Options) *Runner {
	return &Runner{opts: opts}
}

// Run executes a command line such as "database:drop --force" quietly.
func (r *Runner) Run(command string) error {
	args := append(strings.Fields(command), "--quiet")
	root := NewRootCommand(r.opts)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		return fmt.Errorf("command %q failed: %w", command, err)
	}
	return nil
}

// Execute runs the root command with the process arguments.
func Execute(opts Options) error {
	return NewRootCommand(opts).Execute()
}
