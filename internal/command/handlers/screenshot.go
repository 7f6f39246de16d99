package handlers

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/voxctl/voxctl/internal/command"
	"github.com/voxctl/voxctl/internal/screenshot"
)

// Screenshot captures the screen and saves it under the screenshots
// directory. "green shot" covers a common transcription of the phrase.
type Screenshot struct {
	base
	fs       afero.Fs
	capturer screenshot.Capturer
	dir      string
	now      func() time.Time
}

func NewScreenshot(fs afero.Fs, capturer screenshot.Capturer) *Screenshot {
	return &Screenshot{
		base: base{
			name:        "screenshot",
			priority:    command.PriorityMedium,
			description: "Take a screenshot and save to Pictures/Screenshots",
			examples:    []string{"screenshot", "take screenshot", "green shot"},
		},
		fs:       fs,
		capturer: capturer,
		dir:      screenshot.DefaultDir(),
		now:      time.Now,
	}
}

func (c *Screenshot) Matches(text string) bool {
	return isCapturePhrase(command.StripPunctuation(text))
}

func isCapturePhrase(clean string) bool {
	switch clean {
	case "screenshot", "take screenshot", "screen shot", "green shot", "take green shot", "greenshot":
		return true
	}
	return false
}

func (c *Screenshot) Execute(ctx *command.Context, text string) (string, error) {
	img, err := c.capturer.Capture()
	if err != nil {
		return "", command.NewExecutionError(c.name, err)
	}
	if _, err := screenshot.Save(c.fs, c.dir, img, c.now()); err != nil {
		return "", command.NewExecutionError(c.name, err)
	}
	return "", nil
}

var (
	screenshotSinglePattern = regexp.MustCompile(
		`(?i)^(?:reference|paste|latest)?\s*(?:screenshot|screen\s*shot|green\s*shot|greenshot)\s*(?:path|file)?\s*(\d+)?$`)
	screenshotMultiPattern = regexp.MustCompile(
		`(?i)^(?:reference|paste|latest)?\s*(?:screenshot|screen\s*shot|green\s*shot|greenshot)\s*(?:path|file)?\s*last\s+(\d+)$`)
)

// ReferenceScreenshot types the path of the Nth most recent screenshot
// (1 is the latest), or the last N paths for "screenshot last 3".
type ReferenceScreenshot struct {
	base
	fs  afero.Fs
	dir string
}

func NewReferenceScreenshot(fs afero.Fs) *ReferenceScreenshot {
	return &ReferenceScreenshot{
		base: base{
			name:        "reference_screenshot",
			priority:    command.PriorityHigh,
			description: "Paste screenshot path(s) - single: 'reference screenshot 2', multiple: 'screenshot last 3'",
			examples:    []string{"reference screenshot", "reference screenshot 2", "screenshot last 3"},
		},
		fs:  fs,
		dir: screenshot.DefaultDir(),
	}
}

func (c *ReferenceScreenshot) Matches(text string) bool {
	clean := command.StripPunctuation(text)
	if !screenshotSinglePattern.MatchString(clean) && !screenshotMultiPattern.MatchString(clean) {
		return false
	}
	// The bare capture phrases belong to the Screenshot command.
	return !isCapturePhrase(clean)
}

func (c *ReferenceScreenshot) Execute(ctx *command.Context, text string) (string, error) {
	files, err := screenshot.ListRecent(c.fs, c.dir)
	if err != nil {
		return "", command.NewExecutionError(c.name, err)
	}
	if len(files) == 0 {
		return "", nil
	}

	clean := command.StripPunctuation(text)
	if m := screenshotMultiPattern.FindStringSubmatch(clean); m != nil {
		count, _ := strconv.Atoi(m[1])
		if count > len(files) {
			count = len(files)
		}
		return strings.Join(files[:count], "\n"), nil
	}

	index := 1
	if m := screenshotSinglePattern.FindStringSubmatch(clean); m != nil && m[1] != "" {
		index, _ = strconv.Atoi(m[1])
	}
	if index < 1 || index > len(files) {
		return "", nil
	}
	return files[index-1], nil
}
