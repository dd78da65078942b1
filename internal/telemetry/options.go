package telemetry

// Options are the telemetry settings, usually filled from `TESTGRUNT_TELEMETRY_*` flags and env vars.
type Options struct {
	TraceExporter                  string
	TraceExporterHTTPEndpoint      string
	TraceParent                    string
	MetricExporter                 string
	TraceExporterInsecureEndpoint  bool
	MetricExporterInsecureEndpoint bool
}
