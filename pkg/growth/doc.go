// Package growth holds the domain vocabulary shared by the reference tables,
// the percentile calculator and the application shell: the measured metrics,
// the sex selector and the sentinel errors for rejected input.
package growth
