// Package version records which build of doggo wrote a vault document.
package version

// Tool is stamped into the vault's toolVersion field on every mutation so
// replicas can tell which implementation last wrote the document.
const Tool = "doggo-go/0.3.0"
