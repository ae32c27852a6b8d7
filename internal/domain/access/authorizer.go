// Package access defines the confirmation step in front of operator-only screens.
//
// The passphrase gate is a deterrent against casual use of the setup screen and
// the full-inventory export by floor staff. It is not a security boundary: the
// passphrase is shared, it is not tied to an identity, and nothing limits retries.
// Anything that needs real protection belongs behind proper authentication,
// which can be supplied as another Authorizer without changing callers.
package access

// Gate names an operator-only surface
type Gate string

const (
	GateSetup               Gate = "setup"
	GateFullInventoryExport Gate = "full-inventory-export"
)

// IsValid reports whether the gate is known
func (g Gate) IsValid() bool {
	return g == GateSetup || g == GateFullInventoryExport
}

// Authorizer decides whether the operator's input unlocks a gate
type Authorizer interface {
	Authorize(input string) bool
}

// AuthorizerFunc adapts a function to Authorizer
type AuthorizerFunc func(input string) bool

// Authorize calls f(input)
func (f AuthorizerFunc) Authorize(input string) bool {
	return f(input)
}

// IncorrectPassphraseMessage is shown inline when a gate rejects the input
const IncorrectPassphraseMessage = "Incorrect password"
