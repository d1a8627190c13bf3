package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/studymind/internal/events"
	"github.com/opencode-ai/studymind/internal/logging"
	"github.com/opencode-ai/studymind/internal/theme"
)

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeShowCmd, themeCycleCmd, themeSetCmd)
}

// ThemeStatus is the payload of the theme commands.
type ThemeStatus struct {
	Preference theme.Preference `json:"preference"`
	Appearance theme.Appearance `json:"appearance"`
	Icon       string           `json:"icon"`
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change the color theme",
	Long:  "Show or change the persisted theme preference (auto, light or dark).",
	RunE:  runThemeShow,
}

var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the theme preference",
	RunE:  runThemeShow,
}

var themeCycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Switch to the next theme",
	Long:  "Rotate the theme preference auto -> light -> dark -> auto.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTheme(cmd, func(store *theme.Store) error {
			_, err := store.Cycle(cmd.Context())
			return err
		})
	},
}

var themeSetCmd = &cobra.Command{
	Use:       "set <auto|light|dark>",
	Short:     "Set the theme preference",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(theme.Auto), string(theme.Light), string(theme.Dark)},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !theme.Valid(args[0]) {
			return fmt.Errorf("unknown theme %q (expected auto, light or dark)", args[0])
		}
		return withTheme(cmd, func(store *theme.Store) error {
			return store.Set(cmd.Context(), theme.Preference(args[0]))
		})
	},
}

func runThemeShow(cmd *cobra.Command, args []string) error {
	return withTheme(cmd, nil)
}

func withTheme(cmd *cobra.Command, change func(store *theme.Store) error) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	if change != nil {
		sess.theme.OnChange(func(old, next theme.Preference) {
			if err := events.LogThemeChanged(cmd.Context(), sess.events, string(old), string(next)); err != nil {
				logger := logging.Component("cli")
				logger.Warn().Err(err).Msg("failed to record theme change")
			}
		})
		if err := change(sess.theme); err != nil {
			return err
		}
	}

	pref := sess.theme.Preference()
	status := ThemeStatus{
		Preference: pref,
		Appearance: sess.theme.Appearance(),
		Icon:       pref.Icon(),
	}
	if IsJSONOutput() || IsJSONLOutput() {
		return WriteOutput(cmd.OutOrStdout(), status)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s (%s appearance)\n", formatThemePreference(pref), status.Appearance)
	return nil
}
