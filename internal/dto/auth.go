package dto

// LoginURLResponse carries the Google consent URL and the state value the
// frontend must echo back.
type LoginURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// ExchangeCodeRequest is the body of the Google code exchange.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// FirebaseSessionRequest is the body of the Firebase sign-in.
type FirebaseSessionRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// LoginResponse represents the response for a successful sign-in.
type LoginResponse struct {
	Token string `json:"token"`
}
