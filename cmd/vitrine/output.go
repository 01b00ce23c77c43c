package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/vitrinelabs/vitrine/internal/model"
	"github.com/vitrinelabs/vitrine/internal/profile"
	"github.com/vitrinelabs/vitrine/internal/ui"
)

func parseFIDArg(arg string) (int64, error) {
	fid, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || fid <= 0 {
		return 0, fmt.Errorf("fid must be a positive integer, got %q", arg)
	}
	return fid, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printLoadResult(fid int64, res *profile.LoadResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "FID:\t%d\n", fid)
	if res.Entitled {
		fmt.Fprintf(w, "Entitled:\t%s\n", ui.RenderOK("yes"))
	} else {
		fmt.Fprintf(w, "Entitled:\t%s\n", ui.RenderWarn("no"))
	}
	if res.Preferences == nil {
		w.Flush()
		if res.Entitled {
			fmt.Println(ui.RenderMuted("no preferences saved"))
		}
		return
	}
	printPreferences(w, res.Preferences)
	w.Flush()
}

func printPreferences(w *tabwriter.Writer, p *model.PreferencesRecord) {
	if p.ColorTheme != "" {
		fmt.Fprintf(w, "Color Theme:\t%s\n", p.ColorTheme)
	}
	if p.Font != "" {
		fmt.Fprintf(w, "Font:\t%s\n", p.Font)
	}
	if p.DisplayMode != "" {
		fmt.Fprintf(w, "Display Mode:\t%s\n", p.DisplayMode)
	}
	if p.Language != "" {
		fmt.Fprintf(w, "Language:\t%s\n", p.Language)
	}
	if p.Bio != "" {
		fmt.Fprintf(w, "Bio:\t%s\n", p.Bio)
	}
	if len(p.FeaturedTokens) > 0 {
		fmt.Fprintf(w, "Featured Tokens:\t%s\n", strings.Join(p.FeaturedTokens, ", "))
	}
	for _, proj := range p.Projects {
		line := proj.Title
		if proj.URL != "" {
			line += " (" + proj.URL + ")"
		}
		fmt.Fprintf(w, "Project:\t%s\n", line)
	}
	if len(p.SectionOrder) > 0 {
		fmt.Fprintf(w, "Section Order:\t%s\n", strings.Join(p.SectionOrder, ", "))
	}
	fmt.Fprintf(w, "Updated At:\t%s\n", ui.RenderMuted(p.UpdatedAt.Format("2006-01-02 15:04:05")))
}

// printSaveResult prints the outcome of a gated mutation. Failed saves
// return an error so the process exits non-zero.
func printSaveResult(res *profile.SaveResult) error {
	if jsonOutput {
		if err := printJSON(res); err != nil {
			return err
		}
		if !res.Success {
			return fmt.Errorf("%s", res.Error)
		}
		return nil
	}
	if !res.Success {
		return fmt.Errorf("%s", res.Error)
	}
	fmt.Println(ui.RenderOK("saved"))
	return nil
}
