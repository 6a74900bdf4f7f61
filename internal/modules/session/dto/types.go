package dto

type RouteInput struct {
	Kind  string
	Email string
}

type RouteOutput struct {
	Kind  string
	Email string
}

type StateOutput struct {
	Authenticated bool
	Stack         []RouteOutput
}
