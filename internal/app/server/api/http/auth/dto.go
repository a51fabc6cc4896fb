package auth

type loginInput struct {
	Body loginRequest
}

type loginRequest struct {
	Identifier string `json:"identifier" minLength:"1" doc:"Admin identifier"`
	Password   string `json:"password" minLength:"1" doc:"Admin password"`
}

type loginOutput struct {
	Body loginResponse
}

type loginResponse struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	TokenType        string `json:"token_type" example:"bearer"`
	ExpiresIn        int    `json:"expires_in" doc:"Access token lifetime in seconds"`
	RefreshExpiresIn int    `json:"refresh_expires_in" doc:"Refresh token lifetime in seconds"`
}
