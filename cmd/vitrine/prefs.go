package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vitrinelabs/vitrine/internal/model"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Save, update, and clear profile preferences",
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <fid>",
	Short: "Replace a profile's preferences wholesale",
	Long: `Replace a profile's preferences with the values given by flags.
Fields without a flag are cleared. Reads a full JSON record from stdin
when --stdin is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fid, err := parseFIDArg(args[0])
		if err != nil {
			return err
		}

		var rec model.PreferencesRecord
		if stdin, _ := cmd.Flags().GetBool("stdin"); stdin {
			if err := json.NewDecoder(os.Stdin).Decode(&rec); err != nil {
				return fmt.Errorf("reading preferences from stdin: %w", err)
			}
		} else {
			rec = recordFromFlags(cmd)
		}

		res, err := profileClient.SavePreferences(context.Background(), fid, &rec)
		if err != nil {
			return fmt.Errorf("saving preferences: %w", err)
		}
		return printSaveResult(res)
	},
}

var prefsUpdateCmd = &cobra.Command{
	Use:   "update <fid>",
	Short: "Update only the preference fields given by flags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fid, err := parseFIDArg(args[0])
		if err != nil {
			return err
		}

		patch := patchFromFlags(cmd)
		if patch.IsZero() {
			return fmt.Errorf("no fields given; pass at least one preference flag")
		}

		res, err := profileClient.UpdatePreferences(context.Background(), fid, patch)
		if err != nil {
			return fmt.Errorf("updating preferences: %w", err)
		}
		return printSaveResult(res)
	},
}

var prefsSetFieldCmd = &cobra.Command{
	Use:   "set-field <fid> <field> <value>",
	Short: "Set a single preference field from a raw JSON value",
	Long: `Set one preference field by its JSON name. The value must be valid
JSON, so strings need quoting:

  vitrine prefs set-field 12345 colorTheme '"dark"'
  vitrine prefs set-field 12345 featuredTokens '["0xabc/1","0xdef/7"]'`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		fid, err := parseFIDArg(args[0])
		if err != nil {
			return err
		}
		field, raw := args[1], args[2]
		if !json.Valid([]byte(raw)) {
			return fmt.Errorf("value is not valid JSON: %s", raw)
		}

		res, err := profileClient.UpdatePreferenceField(context.Background(), fid, field, json.RawMessage(raw))
		if err != nil {
			return fmt.Errorf("updating field %s: %w", field, err)
		}
		return printSaveResult(res)
	},
}

var prefsClearCmd = &cobra.Command{
	Use:   "clear <fid>",
	Short: "Delete a profile's saved preferences",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fid, err := parseFIDArg(args[0])
		if err != nil {
			return err
		}

		res, err := profileClient.ClearPreferences(context.Background(), fid)
		if err != nil {
			return fmt.Errorf("clearing preferences: %w", err)
		}
		return printSaveResult(res)
	},
}

func addPreferenceFlags(cmd *cobra.Command) {
	cmd.Flags().String("color-theme", "", "color theme name")
	cmd.Flags().String("font", "", "font name")
	cmd.Flags().String("display-mode", "", "display mode (grid, list, showcase)")
	cmd.Flags().String("language", "", "language code")
	cmd.Flags().String("bio", "", "profile bio text")
	cmd.Flags().StringSlice("featured", nil, "featured token identifiers")
	cmd.Flags().StringSlice("sections", nil, "section order")
}

func recordFromFlags(cmd *cobra.Command) model.PreferencesRecord {
	var rec model.PreferencesRecord
	rec.ColorTheme, _ = cmd.Flags().GetString("color-theme")
	rec.Font, _ = cmd.Flags().GetString("font")
	mode, _ := cmd.Flags().GetString("display-mode")
	rec.DisplayMode = model.DisplayMode(mode)
	rec.Language, _ = cmd.Flags().GetString("language")
	rec.Bio, _ = cmd.Flags().GetString("bio")
	rec.FeaturedTokens, _ = cmd.Flags().GetStringSlice("featured")
	rec.SectionOrder, _ = cmd.Flags().GetStringSlice("sections")
	return rec
}

// patchFromFlags builds a patch from only the flags that were set, so
// unmentioned fields stay untouched on the server.
func patchFromFlags(cmd *cobra.Command) *model.PreferencesPatch {
	patch := &model.PreferencesPatch{}
	if cmd.Flags().Changed("color-theme") {
		v, _ := cmd.Flags().GetString("color-theme")
		patch.ColorTheme = &v
	}
	if cmd.Flags().Changed("font") {
		v, _ := cmd.Flags().GetString("font")
		patch.Font = &v
	}
	if cmd.Flags().Changed("display-mode") {
		v, _ := cmd.Flags().GetString("display-mode")
		mode := model.DisplayMode(strings.ToLower(v))
		patch.DisplayMode = &mode
	}
	if cmd.Flags().Changed("language") {
		v, _ := cmd.Flags().GetString("language")
		patch.Language = &v
	}
	if cmd.Flags().Changed("bio") {
		v, _ := cmd.Flags().GetString("bio")
		patch.Bio = &v
	}
	if cmd.Flags().Changed("featured") {
		v, _ := cmd.Flags().GetStringSlice("featured")
		patch.FeaturedTokens = &v
	}
	if cmd.Flags().Changed("sections") {
		v, _ := cmd.Flags().GetStringSlice("sections")
		patch.SectionOrder = &v
	}
	return patch
}

func init() {
	addPreferenceFlags(prefsSetCmd)
	prefsSetCmd.Flags().Bool("stdin", false, "read a full JSON preferences record from stdin")
	addPreferenceFlags(prefsUpdateCmd)

	prefsCmd.AddCommand(prefsSetCmd)
	prefsCmd.AddCommand(prefsUpdateCmd)
	prefsCmd.AddCommand(prefsSetFieldCmd)
	prefsCmd.AddCommand(prefsClearCmd)
}
