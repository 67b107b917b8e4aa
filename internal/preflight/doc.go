// Package preflight provides readiness checks for the catalog API, the
// filesystem, and the external tools movietag depends on.
//
// The CLI "movietag doctor" command runs RunAll and renders the results.
package preflight
