package model

// Category classifies an emitted event.
type Category int

const (
	FrameworkSpan Category = iota // top-level wall-clock span
	GemmKernel                    // GEMM matrix-multiply kernel
	OtherKernel                   // any other accelerator kernel
)

// Tag returns the dotted category string written to the trace.
func (c Category) Tag() string {
	switch c {
	case FrameworkSpan:
		return "armnn.framework"
	case GemmKernel:
		return "opencl.gemm_mm"
	default:
		return "opencl.other"
	}
}

// IsKernel reports whether the category describes a kernel timer.
func (c Category) IsKernel() bool {
	return c == GemmKernel || c == OtherKernel
}

func (c Category) String() string {
	switch c {
	case FrameworkSpan:
		return "FrameworkSpan"
	case GemmKernel:
		return "GemmKernel"
	case OtherKernel:
		return "OtherKernel"
	default:
		return "Unknown"
	}
}

// Categories lists every category in track order.
func Categories() []Category {
	return []Category{FrameworkSpan, GemmKernel, OtherKernel}
}
