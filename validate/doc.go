// Package validate compares a breakpoint fit against expected reference
// values.
//
// A Summary condenses a fit into the four quantities tracked by simulation
// regression tests: the final compression ratio, the densification strain
// and stress, and the compression modulus. Compare checks each quantity
// present in a Reference against the Summary and returns a Report whose Err
// method wraps ErrMismatch when any check fails.
package validate
