package client

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/fav-sync/models"
)

// render writes v as indented JSON when --json is set, otherwise calls text.
func (a *App) render(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if a.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	text(w)
	return nil
}

func printView(w io.Writer, view models.FavoritesView) {
	printFavorites(w, view.Favorites)
	printUsage(w, view.Usage)
}

func printFavorites(w io.Writer, favorites models.Favorites) {
	if len(favorites) == 0 {
		fmt.Fprintln(w, "no favorites")
		return
	}

	for _, f := range favorites {
		if f.IsConverted {
			fmt.Fprintf(w, "%s (converted)\n", f.URL)
			continue
		}
		fmt.Fprintln(w, f.URL)
	}
}

func printUsage(w io.Writer, usage models.StorageUsage) {
	fmt.Fprintf(w, "usage: %d/%d items (%s)\n", usage.Current, usage.Max, usage.Level)
}

func printPages(w io.Writer, pages []models.PageInfo) {
	if len(pages) == 0 {
		fmt.Fprintln(w, "no open pages")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tURL\tOPENED")
	for _, p := range pages {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.URL, p.OpenedAt.Local().Format(time.DateTime))
	}
	_ = tw.Flush()
}
