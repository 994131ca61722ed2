package entities

// AccessTokenLoginRequest logs in with a machine account access token.
// StateFile, when set, lets the library cache the session between runs.
type AccessTokenLoginRequest struct {
	StateFile   *string `json:"stateFile,omitempty"`
	AccessToken string  `json:"accessToken" validate:"required"`
}

// AccessTokenLoginResponse is the payload of a login command.
type AccessTokenLoginResponse struct {
	Authenticated       bool `json:"authenticated"`
	ResetMasterPassword bool `json:"resetMasterPassword"`
	ForcePasswordReset  bool `json:"forcePasswordReset"`
}
