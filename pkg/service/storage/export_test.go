package storage

// WithWriterFactory allows tests to capture uploads in memory
var WithWriterFactory = withWriterFactory

// SanitizeName is exposed for tests
var SanitizeName = sanitizeName
