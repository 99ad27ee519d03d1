// Package gpu abstracts the tensor ops the funnel analyzer's L1/L2 layers
// run per sampled frame (mean absolute difference, Laplacian convolution)
// behind a Backend so a CUDA implementation can be dropped in without
// touching the funnel package. Only the CPU backend ships by default; the
// CUDA backend is a build-tagged stub, the Go equivalent of the original
// service's torch.cuda.is_available() runtime check.
package gpu

// Backend runs the numeric kernels the funnel needs against grayscale luma
// planes. Frames are flattened row-major []float64 in [0,1].
type Backend interface {
	// Diff returns the mean absolute difference between two equally-sized
	// frames, used by L1 to detect a scene cut.
	Diff(a, b []float64) float64
	// LaplacianVariance convolves frame (width x height) with the 3x3
	// Laplacian kernel and returns the variance of the result, used by L2
	// as a focus/sharpness proxy.
	LaplacianVariance(frame []float64, width, height int) float64
	// Release frees any backend-held resources (GPU cache, pinned buffers)
	// at the end of a GPU-bearing stage. The CPU backend is a no-op.
	Release()
}

// Default is the backend construction used by the funnel package;
// selection happens at build time via the cuda build tag.
func Default() Backend {
	return newBackend()
}
