package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/jpfielding/ime.go/pkg/canvas"
	"github.com/jpfielding/ime.go/pkg/ime"
	"github.com/jpfielding/ime.go/pkg/imageio"
	"github.com/jpfielding/ime.go/pkg/store"
	"github.com/jpfielding/ime.go/pkg/util"
	"github.com/spf13/cobra"
)

// NewInfoCmd creates the info cobra command
func NewInfoCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Describe an image file",
		Long:  "Loads an image and prints its size, per-channel statistics, histogram peaks and a content fingerprint.",
		RunE: func(cmd *cobra.Command, args []string) error {
			filePath, _ := cmd.Flags().GetString("file")
			histPath, _ := cmd.Flags().GetString("histogram")

			if filePath == "" && len(args) > 0 {
				filePath = args[0]
			}

			if filePath == "" {
				return fmt.Errorf("file path is required. Use --file flag or provide as argument")
			}

			return runInfo(cmd.OutOrStdout(), filePath, histPath)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringP("file", "f", "", "image file path to describe")
	pf.String("histogram", "", "also render the histogram plot to this path")

	return cmd
}

// runInfo prints the description of the image at filePath to w
func runInfo(w io.Writer, filePath, histPath string) error {
	pixels, err := imageio.Load(filePath)
	if err != nil {
		return fmt.Errorf("load error: %w", err)
	}
	img, err := ime.New(pixels, ime.RGB)
	if err != nil {
		return fmt.Errorf("image error: %w", err)
	}

	fmt.Fprintf(w, "File: %s\n", filePath)
	fmt.Fprintf(w, "Codec: %s\n", imageio.CodecByPath(filePath).Name())
	fmt.Fprintf(w, "Size: %dx%d\n", img.Width(), img.Height())
	fmt.Fprintf(w, "Layout: %s\n", img.Layout())
	fmt.Fprintf(w, "Fingerprint: %s\n", util.PixelsUUID(pixels))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Channels ===")
	hist := ime.NewHistogram(img)
	for k, ch := range hist.Channels() {
		lo, hi, sum := channelStats(img, k)
		peak, _ := hist.MostFrequentValue(k, 0, ime.Bins-1)
		count, _ := hist.PeakValue(k, 0, ime.Bins-1)
		fmt.Fprintf(w, "%-6s min %3.0f  max %3.0f  mean %6.2f  peak %3d (%d px)\n",
			ch, lo, hi, sum/float64(img.Width()*img.Height()), peak, count)
	}

	if histPath == "" {
		return nil
	}
	drawing, err := ime.NewHistogramDrawer(store.HistogramSize, store.HistogramSize, canvas.New()).Draw(hist)
	if err != nil {
		return fmt.Errorf("histogram error: %w", err)
	}
	fmt.Fprintf(w, "\nWriting histogram to %s\n", histPath)
	return imageio.Save(histPath, drawing)
}

func channelStats(img *ime.Image, k int) (lo, hi float32, sum float64) {
	lo, hi = 255, 0
	for i := 0; i < img.Height(); i++ {
		for j := 0; j < img.Width(); j++ {
			px, _ := img.PixelValues(i, j)
			v := px[k]
			lo, hi = min(lo, v), max(hi, v)
			sum += float64(v)
		}
	}
	return lo, hi, sum
}
