package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/motorlane/kiosk/tui/theme"
)

const maxWidth = 60
const minWidth = 40

// getTerminalWidth returns the terminal width capped at maxWidth.
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < minWidth {
		return maxWidth
	}
	if width > maxWidth {
		return maxWidth
	}
	return width
}

// wrapText wraps text to the specified width, preserving existing line breaks.
func wrapText(text string, width int) string {
	if width <= 0 {
		width = maxWidth
	}

	var result []string
	for _, paragraph := range strings.Split(text, "\n") {
		if len(paragraph) <= width {
			result = append(result, paragraph)
			continue
		}

		var line string
		for _, word := range strings.Fields(paragraph) {
			if line == "" {
				line = word
			} else if len(line)+1+len(word) <= width {
				line += " " + word
			} else {
				result = append(result, line)
				line = word
			}
		}
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}

// SetStyledHelp applies consistent kiosk styling to a command's help output.
// Call this on the root command before Execute().
func SetStyledHelp(cmd *cobra.Command) {
	cmd.SetHelpFunc(styledHelpFunc)
}

func styledHelpFunc(cmd *cobra.Command, args []string) {
	t := theme.DefaultTheme
	width := getTerminalWidth()

	fmt.Println(t.Title.Render(cmd.CommandPath()))
	if cmd.Short != "" {
		fmt.Println(t.Muted.Render(wrapText(cmd.Short, width)))
	}
	if cmd.Long != "" {
		fmt.Println()
		fmt.Println(wrapText(strings.TrimSpace(cmd.Long), width))
	}

	if cmd.Runnable() {
		fmt.Println()
		fmt.Println(t.Accent.Render("USAGE"))
		fmt.Println(" " + cmd.UseLine())
	}

	if len(cmd.Commands()) > 0 {
		fmt.Println()
		fmt.Println(t.Accent.Render("COMMANDS"))
		for _, sub := range cmd.Commands() {
			if sub.Hidden {
				continue
			}
			fmt.Printf(" %s  %s\n",
				t.Title.Render(fmt.Sprintf("%-12s", sub.Name())),
				t.Muted.Render(sub.Short))
		}
	}

	if cmd.HasAvailableLocalFlags() || cmd.HasAvailableInheritedFlags() {
		fmt.Println()
		fmt.Println(t.Accent.Render("FLAGS"))
		printFlags(t, cmd.LocalFlags())
		printFlags(t, cmd.InheritedFlags())
	}

	fmt.Println()
	fmt.Println(t.Help.Render(fmt.Sprintf("Run '%s [command] --help' for more information.", cmd.CommandPath())))
}

func printFlags(t *theme.Theme, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		name := "--" + f.Name
		if f.Shorthand != "" {
			name = "-" + f.Shorthand + ", " + name
		}
		fmt.Printf(" %s  %s\n",
			t.Title.Render(fmt.Sprintf("%-16s", name)),
			t.Muted.Render(f.Usage))
	})
}

// PrintError prints a styled error message to stderr with help hint.
func PrintError(cmd *cobra.Command, err error) {
	t := theme.DefaultTheme
	red := lipgloss.NewStyle().Bold(true).Inherit(t.Error)
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", red.Render("Error:"), err.Error())
	fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", t.Muted.Render(fmt.Sprintf("Run '%s --help' for usage.", cmd.CommandPath())))
}
