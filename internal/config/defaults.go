package config

// defaults returns the built-in configuration. Every value here can be
// overridden by the config file or environment variables.
func defaults() map[string]any {
	return map[string]any{
		"hotkeys": map[string]any{
			"push_to_talk":      []any{"ctrl", "super"},
			"toggle_continuous": []any{"ctrl", "shift", "d"},
		},
		"audio": map[string]any{
			"sample_rate":          int64(16000),
			"channels":             int64(1),
			"buffer_samples":       int64(8196),
			"quiet_ms":             int64(200),
			"beep_on_start":        true,
			"beep_on_stop":         true,
			"start_beep_frequency": int64(800),
			"start_beep_duration":  int64(100),
			"stop_beep_frequency":  int64(600),
			"stop_beep_duration":   int64(100),
			"dump_wav":             false,
			"dump_dir":             "",
		},
		"model": map[string]any{
			"path":     "",
			"language": "en",
		},
		"grid": map[string]any{
			"default_size": int64(9),
		},
		"parser": map[string]any{
			"fuzzy_threshold": 0.8,
			"ignored_words":   []any{"thank", "you", "thanks", "please"},
		},
		"text_processing": map[string]any{
			"command_only_mode":    true,
			"punctuation_commands": true,
			"punctuation_map": map[string]any{
				"period":            ".",
				"comma":             ",",
				"question mark":     "?",
				"exclamation point": "!",
				"new line":          "\n",
				"new paragraph":     "\n\n",
			},
			"custom_vocabulary": map[string]any{},
			"command_words": map[string]any{
				"delete that":  "undo_last",
				"scratch that": "undo_last",
			},
		},
		"custom_commands": map[string]any{
			"enabled":  false,
			"commands": []any{},
		},
		"logging": map[string]any{
			"enabled":   false,
			"level":     "info",
			"max_files": int64(10),
		},
	}
}
