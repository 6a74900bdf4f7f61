package domain

// RouteKind names a destination on the authentication flow stack.
type RouteKind string

const (
	RouteCreateAccount RouteKind = "createAccount"
	RouteSignIn        RouteKind = "signIn"
	RouteVerifyEmail   RouteKind = "verifyEmail"
)

func (k RouteKind) Valid() bool {
	switch k {
	case RouteCreateAccount, RouteSignIn, RouteVerifyEmail:
		return true
	}
	return false
}

// Route is one stack entry. Email carries the payload for verifyEmail
// and is empty for every other kind.
type Route struct {
	Kind  RouteKind `json:"kind"`
	Email string    `json:"email,omitempty"`
}

// State is the whole navigation and authentication state. Authenticated
// selects which surface renders; Stack only drives the unauthenticated
// flow and is cleared on every authentication transition.
type State struct {
	Authenticated bool    `json:"authenticated"`
	Stack         []Route `json:"stack"`
}

func NewState() State {
	return State{Stack: []Route{}}
}
