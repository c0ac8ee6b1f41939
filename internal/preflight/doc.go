// Package preflight provides readiness checks for the filesystem paths a
// pdfmatch run depends on.
//
// These checks run in two contexts:
//   - The workflow runner calls RunAll before touching any source. If a
//     check fails the run stops before writing output.
//   - The CLI "pdfmatch check" command prints every result so operators can
//     fix paths and permissions up front.
package preflight
