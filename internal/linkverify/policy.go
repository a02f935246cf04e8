package linkverify

// Policy decides what happens to an internal link that does not resolve.
type Policy string

const (
	PolicyIgnore Policy = "ignore"
	PolicyLog    Policy = "log"
	PolicyWarn   Policy = "warn"
	PolicyThrow  Policy = "throw"
)

// Aborts reports whether a broken link under this policy must stop the build.
func (p Policy) Aborts() bool { return p == PolicyThrow }
