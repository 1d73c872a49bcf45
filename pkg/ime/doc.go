// Package ime is an in-memory raster image transformation engine.
//
// An Image is an immutable grid of pixels whose channel values lie in
// [0,255]. Every transform (flips, convolution filters, colour matrices,
// greyscale derivations, levels adjustment, Haar wavelet compression,
// splitting and combining) returns a new Image and never alters its
// receiver, so a single Image may be shared freely between goroutines.
//
// Images are exchanged with the outside world as [height][width][channels]
// float32 arrays (New, Array). Histograms are built from images with
// NewHistogram and plotted onto any Canvas by a HistogramDrawer.
package ime
