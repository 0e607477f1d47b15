package main

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/harrylevesque/gallery/internal/ui"
	"github.com/harrylevesque/gallery/internal/upload"
)

const maxParallelUploads = 4

// clipboardOverride lets tests replace the system clipboard.
var clipboardOverride upload.Clipboard

func newUploadCmd(a *app) *cobra.Command {
	var (
		unique  bool
		copyURL bool
	)

	cmd := &cobra.Command{
		Use:   "upload [file...]",
		Short: "Upload images after checking their type and size",
		Long: `Uploads each file as its own attempt. Files that are not jpeg, png or gif,
or that are larger than the configured limit, are rejected without
contacting the server.

Example:
  gallery upload --copy holiday.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if copyURL && len(args) != 1 {
				return errors.New("--copy needs exactly one file")
			}

			client, err := a.client()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			var outMu sync.Mutex

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(maxParallelUploads)

			results := make([]upload.Result, len(args))
			for i, path := range args {
				i, path := i, path
				g.Go(func() error {
					panel := ui.NewUploadPanel(&lockedWriter{mu: &outMu, w: out}, ui.DefaultStyles())
					opts := []upload.Option{
						upload.WithMaxBytes(a.cfg.Upload.MaxBytes),
						upload.WithAllowedTypes(a.cfg.Upload.AllowedTypes),
						upload.WithUniqueNames(unique),
						upload.WithLogger(a.logger.Named("upload")),
					}
					if clipboardOverride != nil {
						opts = append(opts, upload.WithClipboard(clipboardOverride))
					}
					ctrl := upload.NewController(client, panel, opts...)

					f, err := upload.OpenFile(path)
					if err != nil {
						results[i] = upload.Result{State: upload.Rejected, Err: err}
						outMu.Lock()
						fmt.Fprintf(out, "%s: %v\n", path, err)
						outMu.Unlock()
						return nil
					}

					results[i] = ctrl.Submit(ctx, f)

					outMu.Lock()
					fmt.Fprintf(out, "%s\n%s", path, panel.View())
					outMu.Unlock()

					if copyURL && results[i].State == upload.Succeeded {
						// Copy failures are logged by the controller.
						_ = ctrl.CopyURL()
					}
					return nil
				})
			}
			_ = g.Wait()

			for _, r := range results {
				if r.State != upload.Succeeded {
					return errReported
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&unique, "unique", false, "Append a random suffix to each file name before upload")
	cmd.Flags().BoolVar(&copyURL, "copy", false, "Copy the resulting URL to the clipboard")
	return cmd
}

type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
