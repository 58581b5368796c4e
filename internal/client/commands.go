package client

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/fav-sync/models"
)

func (a *App) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the synced favorites and the storage usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := a.adapter.View(cmd.Context())
			if err != nil {
				return err
			}
			return a.render(cmd, view, func(w io.Writer) { printView(w, view) })
		},
	}
}

func (a *App) usageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show how much of the sync storage is used",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			usage, err := a.adapter.Usage(cmd.Context())
			if err != nil {
				return err
			}
			return a.render(cmd, usage, func(w io.Writer) { printUsage(w, usage) })
		},
	}
}

func (a *App) pagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "List the open pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pages, err := a.adapter.Pages(cmd.Context())
			if err != nil {
				return err
			}
			return a.render(cmd, pages, func(w io.Writer) { printPages(w, pages) })
		},
	}
}

func (a *App) openCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open <url>",
		Short: "Open a page; supported pages receive staged favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.adapter.Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.render(cmd, info, func(w io.Writer) { fmt.Fprintln(w, info.ID) })
		},
	}
}

func (a *App) closeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "close <id>",
		Short: "Close a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.adapter.Close(cmd.Context(), args[0])
		},
	}
}

func (a *App) focusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "focus <id>",
		Short: "Make a page the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.adapter.Focus(cmd.Context(), args[0])
		},
	}
}

func (a *App) favoritesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "favorites <id>",
		Short: "Ask a page for its favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.adapter.PageFavorites(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err = a.render(cmd, resp, func(w io.Writer) { printFavorites(w, resp.Favorites) }); err != nil {
				return err
			}
			if !resp.Success {
				return fmt.Errorf("%w: %s", ErrPageAnswer, resp.Error)
			}
			return nil
		},
	}
}

func (a *App) replaceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "replace <id> [file]",
		Short: "Overwrite the favorites of a page with a JSON list (stdin when no file is given)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := cmd.InOrStdin()
			if len(args) == 2 && args[1] != "-" {
				f, err := os.Open(args[1])
				if err != nil {
					return fmt.Errorf("open favorites file: %w", err)
				}
				defer f.Close()
				src = f
			}

			var favorites models.Favorites
			if err := json.NewDecoder(src).Decode(&favorites); err != nil {
				return fmt.Errorf("decode favorites: %w", err)
			}

			stored, err := a.adapter.Replace(cmd.Context(), args[0], favorites)
			if err != nil {
				return err
			}
			return a.render(cmd, stored, func(w io.Writer) { printFavorites(w, stored) })
		},
	}
}

func (a *App) starCommand() *cobra.Command {
	var converted bool

	cmd := &cobra.Command{
		Use:   "star <id> <url>",
		Short: "Toggle a favorite on a page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.adapter.Star(cmd.Context(), args[0], models.StarRequest{URL: args[1], IsConverted: converted})
			if err != nil {
				return err
			}
			return a.render(cmd, resp, func(w io.Writer) {
				if resp.Starred {
					fmt.Fprintf(w, "starred %s\n", args[1])
				} else {
					fmt.Fprintf(w, "unstarred %s\n", args[1])
				}
			})
		},
	}
	cmd.Flags().BoolVar(&converted, "converted", false, "mark the image as converted")

	return cmd
}

func (a *App) uploadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upload",
		Short: "Copy the favorites of the active page to the sync storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := a.adapter.Upload(cmd.Context())
			if err != nil {
				return err
			}
			if err = a.render(cmd, status, func(w io.Writer) { fmt.Fprintln(w, status.Message) }); err != nil {
				return err
			}
			if status.IsError {
				return fmt.Errorf("%w: %s", ErrUploadFailed, status.Message)
			}
			return nil
		},
	}
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the daemon build info",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := a.adapter.Version(cmd.Context())
			if err != nil {
				return err
			}
			return a.render(cmd, info, func(w io.Writer) {
				fmt.Fprintf(w, "favsyncd %s (date %s, commit %s)\n", info.Version, info.Date, info.Commit)
			})
		},
	}
}
