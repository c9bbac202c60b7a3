package status

import (
	"fmt"
)

// FileFormatter defines how entry status and totals should be formatted
type FileFormatter interface {
	// FormatEntry formats the status message of one entry
	FormatEntry(info EntryInfo) string

	// FormatSummary formats the totals of a run
	FormatSummary(s Summary) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatEntry formats an entry status message with emojis
func (f *DefaultFileFormatter) FormatEntry(info EntryInfo) string {
	noun := "file"
	if info.IsDir {
		noun = "directory"
	}
	switch info.Status {
	case StatusCreated:
		if info.Replacements > 0 {
			return fmt.Sprintf("✨ Created %s %s (%d replacements)", noun, info.Path, info.Replacements)
		}
		return fmt.Sprintf("✨ Created %s %s", noun, info.Path)
	case StatusPlanned:
		return fmt.Sprintf("📝 Would create %s %s", noun, info.Path)
	case StatusSkipped:
		return fmt.Sprintf("⏭️  Skipped %s", info.Path)
	case StatusFailed:
		return fmt.Sprintf("❌ Failed %s", info.Path)
	default:
		return fmt.Sprintf("❔ Unknown %s", info.Path)
	}
}

// FormatSummary formats the totals of a run
func (f *DefaultFileFormatter) FormatSummary(s Summary) string {
	verb := "Templatized"
	if s.DryRun {
		verb = "Would templatize"
	}
	return fmt.Sprintf("✅ %s %d directories and %d files, %d replacements, %d skipped",
		verb, s.Dirs, s.Files, s.Replacements, s.Skipped)
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
