package request

// SignupRequest is the request body for registering a player
type SignupRequest struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar,omitempty"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StartGameRequest is the request body for starting a game
type StartGameRequest struct {
	Timer int `json:"timer,omitempty"`
}

// ActionRequest is the request body for performing a game action
type ActionRequest struct {
	Action string `json:"action"`
}

// TimerRequest is the request body for ticking the game timer
type TimerRequest struct {
	DecrementBy int `json:"decrement_by,omitempty"`
}
