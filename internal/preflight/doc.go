// Package preflight provides readiness checks for the filesystem paths a
// materialization run depends on.
//
// These checks run in two contexts:
//   - The materialize command calls RunAll before touching the output tree
//     and refuses to start when a check fails.
//   - The CLI "eyeset preflight" command prints every result so problems can
//     be fixed before a long copy.
package preflight
