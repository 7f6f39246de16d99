package command

import (
	"fmt"
	"sort"
	"sync"

	"github.com/voxctl/voxctl/internal/events"
	"github.com/voxctl/voxctl/internal/logging"
)

// Registry holds all registered commands sorted by descending priority
// and dispatches utterances to the first one that matches. A broken
// command handler never blocks the rest.
type Registry struct {
	mu       sync.RWMutex
	commands []Command
	logger   logging.Logger
}

// NewRegistry creates an empty registry. A nil logger falls back to a
// disabled one.
func NewRegistry(logger logging.Logger) *Registry {
	if logger == nil {
		logger, _ = logging.Init(logging.Config{})
	}
	return &Registry{logger: logger}
}

// Register appends cmd and re-sorts by descending priority. Ties keep
// registration order.
func (r *Registry) Register(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.commands = append(r.commands, cmd)
	sort.SliceStable(r.commands, func(i, j int) bool {
		return r.commands[i].Priority() > r.commands[j].Priority()
	})
	r.logger.Debug("command registered",
		"command", Name(cmd),
		"priority", cmd.Priority(),
		"total", len(r.commands))
}

// Unregister removes cmd by identity and reports whether it was found.
func (r *Registry) Unregister(cmd Command) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.commands {
		if c == cmd {
			r.commands = append(r.commands[:i], r.commands[i+1:]...)
			r.logger.Debug("command unregistered", "command", Name(cmd))
			return true
		}
	}
	return false
}

// Commands returns a snapshot of the registered commands in dispatch
// order.
func (r *Registry) Commands() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// FindMatching returns the first command, in priority order, whose
// Matches accepts text. With enabledOnly, disabled commands are skipped.
// A panicking Matches counts as no match.
func (r *Registry) FindMatching(text string, enabledOnly bool) Command {
	for _, cmd := range r.Commands() {
		if enabledOnly && !Enabled(cmd) {
			continue
		}
		if r.safeMatches(cmd, text) {
			return cmd
		}
	}
	return nil
}

func (r *Registry) safeMatches(cmd Command, text string) (matched bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("command matcher panicked",
				"command", Name(cmd),
				"panic", fmt.Sprint(rec))
			matched = false
		}
	}()
	return cmd.Matches(text)
}

func (r *Registry) safeValidate(cmd Command, ctx *Context, text string) (valid bool, failed error) {
	defer func() {
		if rec := recover(); rec != nil {
			valid = false
			failed = fmt.Errorf("validator panicked: %v", rec)
		}
	}()
	v, ok := cmd.(Validator)
	if !ok {
		return true, nil
	}
	return v.Validate(ctx, text), nil
}

// Process routes text to the first matching command and runs it.
//
// The returned string is the command's literal-text result; executed
// reports whether a command ran to completion. No match is not an error.
// Execution failures come back as *ExecutionError after the failure
// event has been published.
func (r *Registry) Process(ctx *Context, text string, enabledOnly bool) (string, bool, error) {
	cmd := r.FindMatching(text, enabledOnly)
	if cmd == nil {
		r.logger.Debug("no command matched", "text", text)
		return "", false, nil
	}

	name := Name(cmd)
	ctx.Publish(events.CommandDetected, map[string]any{
		"command":  name,
		"text":     text,
		"priority": cmd.Priority(),
	})

	valid, validateErr := r.safeValidate(cmd, ctx, text)
	if validateErr != nil {
		r.logger.Error("command validation errored",
			"command", name, "error", validateErr)
		ctx.Publish(events.CommandFailed, map[string]any{
			"command": name,
			"text":    text,
			"reason":  "validation_error",
			"error":   validateErr.Error(),
		})
		return "", false, nil
	}
	if !valid {
		r.logger.Debug("command validation failed", "command", name, "text", text)
		ctx.Publish(events.CommandFailed, map[string]any{
			"command": name,
			"text":    text,
			"reason":  "validation_failed",
		})
		return "", false, nil
	}

	result, err := r.safeExecute(cmd, ctx, text)
	if err == nil {
		ctx.Publish(events.CommandExecuted, map[string]any{
			"command": name,
			"text":    text,
			"result":  result,
		})
		return result, true, nil
	}

	if execErr, ok := AsExecutionError(err); ok {
		r.logger.Error("command execution failed",
			"command", name, "error", execErr)
		ctx.Publish(events.CommandFailed, map[string]any{
			"command": name,
			"text":    text,
			"reason":  "execution_error",
			"error":   execErr.Error(),
		})
		return "", false, execErr
	}

	wrapped := NewExecutionError(fmt.Sprintf("%T", cmd), err)
	r.logger.Error("command raised unexpectedly",
		"command", name, "error", err)
	ctx.Publish(events.CommandFailed, map[string]any{
		"command": name,
		"text":    text,
		"reason":  "unexpected_error",
		"error":   err.Error(),
	})
	return "", false, wrapped
}

func (r *Registry) safeExecute(cmd Command, ctx *Context, text string) (result string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = ""
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return cmd.Execute(ctx, text)
}

// Help renders a priority-ordered summary of every registered command
// for the help overlay and the commands listing.
func (r *Registry) Help() string {
	var out string
	for _, cmd := range r.Commands() {
		out += fmt.Sprintf("%4d  %s\n", cmd.Priority(), cmd.Description())
		for _, ex := range Examples(cmd) {
			out += fmt.Sprintf("        e.g. %q\n", ex)
		}
	}
	return out
}
