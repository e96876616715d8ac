//go:build narrowphase_debug

package physics

// debugAssertions makes every check panic on precondition violations.
const debugAssertions = true
