package notion

// WithServices allows tests to inject mock page and block services
var WithServices = withServices

// ReportBlocks is exposed for tests
var ReportBlocks = reportBlocks
