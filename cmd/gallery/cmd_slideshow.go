package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrylevesque/gallery/internal/slideshow"
)

func newSlideshowCmd(a *app) *cobra.Command {
	var (
		interval time.Duration
		ticks    int
	)

	cmd := &cobra.Command{
		Use:   "slideshow [dir]",
		Short: "Cycle the images in a folder, one at a time",
		Long: `Shows the image files in dir in name order, switching to the next one
every interval and wrapping around after the last. Runs until
interrupted, or for --ticks switches.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			frames, err := slideshow.LoadFrames(args[0])
			if err != nil {
				return err
			}
			rot := slideshow.NewRotator(frames)
			first, ok := rot.Active()
			if !ok {
				return fmt.Errorf("no images in %s", args[0])
			}
			if interval <= 0 {
				interval = a.cfg.Slideshow.Interval
			}

			out := cmd.OutOrStdout()
			show := func(f slideshow.Frame) {
				fmt.Fprintf(out, "[%d/%d] %s\n", rot.Index()+1, rot.Len(), f.Source)
			}
			show(first)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			n := 0
			err = rot.Run(ctx, interval, func(f slideshow.Frame) {
				if ticks > 0 && n >= ticks {
					return
				}
				show(f)
				n++
				if ticks > 0 && n >= ticks {
					cancel()
				}
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().DurationVarP(&interval, "interval", "i", 0, "Time each image stays on screen (default from config, 3s)")
	cmd.Flags().IntVarP(&ticks, "ticks", "n", 0, "Stop after this many switches (0 runs until interrupted)")
	return cmd
}
