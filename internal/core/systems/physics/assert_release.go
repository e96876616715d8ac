//go:build !narrowphase_debug

package physics

const debugAssertions = false
