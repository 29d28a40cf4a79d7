package loadtest

import "io"

// ShowHelp prints usage information for the load test tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `lexrec load test
================

Sends generated profiles to a running lexrec service and checks every
recommendation against the response contract.

Usage:
  go run ./cmd/loadtest [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -requests int
        Number of recommendation requests (default 1000)
  -limit int
        Limit sent with every request (default 6)
  -anonymous float
        Fraction of requests sent without a user (default 0.1)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -output string
        Write a JSON report to this file
  -verbose
        Log every failure and violation
  -help
        Show this help message

Examples:
  go run ./cmd/loadtest -requests 5000 -workers 16
  go run ./cmd/loadtest -url http://localhost:8080 -output report.json
`)
}
