// Package armnn2perfetto converts ArmNN profiler JSON dumps into Chrome JSON
// traces that open in the Perfetto UI.
//
// Quick start:
//
//	c := armnn2perfetto.New(armnn2perfetto.WithFlows(true))
//	trace, stats, err := c.Convert(dump)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("perfetto_trace.json", trace, 0o644)
//	fmt.Println(stats.Spans, "spans")
//
// Framework wall-clock spans go to track 0, GEMM kernels to track 1 and all
// other OpenCL kernels to track 2. Kernel names are cleaned of their GWS/LWS
// and #id decoration, which is kept in the span args.
package armnn2perfetto
