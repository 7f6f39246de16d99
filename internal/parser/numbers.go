package parser

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/voxctl/voxctl/internal/colors"
)

// numberWordsFile is the TOML structure of the homophone dictionary resource.
type numberWordsFile struct {
	NumberWords map[string]int `toml:"number_words"`
}

// LoadNumberWords reads the homophone dictionary from path on fs.
// When the file is absent or unreadable the built-in fallback table is
// returned, so callers always get a usable dictionary.
func LoadNumberWords(fs afero.Fs, path string) map[string]int {
	if path == "" {
		return fallbackNumberWords()
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if !os.IsNotExist(err) {
			colors.Warning(fmt.Sprintf("cannot read number dictionary %s: %v, using built-in table", path, err))
		}
		return fallbackNumberWords()
	}
	var file numberWordsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		colors.Warning(fmt.Sprintf("cannot parse number dictionary %s: %v, using built-in table", path, err))
		return fallbackNumberWords()
	}
	if len(file.NumberWords) == 0 {
		return fallbackNumberWords()
	}
	return file.NumberWords
}

// fallbackNumberWords is the built-in homophone table used when no
// external dictionary is available.
func fallbackNumberWords() map[string]int {
	return map[string]int{
		"zero":      0,
		"oh":        0,
		"one":       1,
		"won":       1,
		"a":         1,
		"an":        1,
		"two":       2,
		"to":        2,
		"too":       2,
		"three":     3,
		"tree":      3,
		"four":      4,
		"for":       4,
		"fore":      4,
		"five":      5,
		"six":       6,
		"sicks":     6,
		"seven":     7,
		"eight":     8,
		"ate":       8,
		"nine":      9,
		"nein":      9,
		"ten":       10,
		"eleven":    11,
		"twelve":    12,
		"thirteen":  13,
		"fourteen":  14,
		"fifteen":   15,
		"sixteen":   16,
		"seventeen": 17,
		"eighteen":  18,
		"nineteen":  19,
		"twenty":    20,
		"thirty":    30,
		"forty":     40,
		"fifty":     50,
		"sixty":     60,
		"seventy":   70,
		"eighty":    80,
		"ninety":    90,
	}
}
