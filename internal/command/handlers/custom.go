package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/voxctl/voxctl/internal/colors"
	"github.com/voxctl/voxctl/internal/command"
	"github.com/voxctl/voxctl/internal/config"
)

// Custom action types supported by configuration-defined commands.
const (
	ActionTypeText        = "type_text"
	ActionCopyToClipboard = "copy_to_clipboard"
	ActionExecuteFile     = "execute_file"
	ActionKeyCombination  = "key_combination"
)

// Custom is a user-defined command loaded from the custom_commands
// configuration table. High priority so it can override built-ins.
type Custom struct {
	trigger    string
	actionType string
	text       string
	path       string
	keys       []string
}

// NewCustom builds a custom command. Returns an error for an unknown
// action type or a missing trigger.
func NewCustom(trigger, actionType string, action map[string]any) (*Custom, error) {
	trigger = strings.ToLower(strings.TrimSpace(trigger))
	if trigger == "" {
		return nil, fmt.Errorf("custom command without trigger")
	}

	c := &Custom{trigger: trigger, actionType: actionType}
	switch actionType {
	case ActionTypeText, ActionCopyToClipboard:
		c.text, _ = action["text"].(string)
		if c.text == "" {
			return nil, fmt.Errorf("custom command %q: action %s needs text", trigger, actionType)
		}
	case ActionExecuteFile:
		c.path, _ = action["path"].(string)
		if c.path == "" {
			return nil, fmt.Errorf("custom command %q: execute_file needs path", trigger)
		}
	case ActionKeyCombination:
		raw, _ := action["keys"].([]any)
		for _, k := range raw {
			if s, ok := k.(string); ok {
				c.keys = append(c.keys, s)
			}
		}
		if len(c.keys) == 0 {
			return nil, fmt.Errorf("custom command %q: key_combination needs keys", trigger)
		}
	default:
		return nil, fmt.Errorf("custom command %q: unknown action type %q", trigger, actionType)
	}
	return c, nil
}

func (c *Custom) Name() string { return "custom:" + c.trigger }

func (c *Custom) Matches(text string) bool {
	return command.StripPunctuation(text) == c.trigger
}

func (c *Custom) Execute(ctx *command.Context, text string) (string, error) {
	switch c.actionType {
	case ActionTypeText:
		if err := ctx.Keyboard.Type(c.text); err != nil {
			return "", command.NewExecutionError(c.Name(), err)
		}
	case ActionCopyToClipboard:
		if err := ctx.Clipboard.Copy(c.text); err != nil {
			return "", command.NewExecutionError(c.Name(), err)
		}
	case ActionExecuteFile:
		if err := ctx.Launcher.Open(os.ExpandEnv(c.path)); err != nil {
			return "", command.NewExecutionError(c.Name(), err)
		}
	case ActionKeyCombination:
		if err := ctx.Keyboard.Combo(c.keys...); err != nil {
			return "", command.NewExecutionError(c.Name(), err)
		}
	}
	return "", nil
}

func (c *Custom) Priority() int { return command.PriorityHigh }

func (c *Custom) Description() string {
	switch c.actionType {
	case ActionTypeText:
		return "Type: " + truncate(c.text, 30)
	case ActionCopyToClipboard:
		return "Copy: " + truncate(c.text, 30)
	case ActionExecuteFile:
		return "Run: " + filepath.Base(c.path)
	case ActionKeyCombination:
		return "Press: " + strings.Join(c.keys, "+")
	}
	return "Custom command"
}

func (c *Custom) Examples() []string { return []string{c.trigger} }

// LoadCustomCommands builds the custom commands defined in config.
// Invalid definitions are skipped; they must not block the rest.
func LoadCustomCommands(cfg *config.Config) []*Custom {
	if cfg == nil || !cfg.GetBool(false, "custom_commands", "enabled") {
		return nil
	}

	var commands []*Custom
	for _, entry := range cfg.GetTableSlice("custom_commands", "commands") {
		trigger, _ := entry["trigger"].(string)
		action, _ := entry["action"].(map[string]any)
		actionType, _ := action["type"].(string)

		cmd, err := NewCustom(trigger, actionType, action)
		if err != nil {
			colors.Warning(fmt.Sprintf("skipping custom command: %v", err))
			continue
		}
		commands = append(commands, cmd)
	}
	return commands
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
