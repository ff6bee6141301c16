package model

// Credential is the access/refresh token pair issued by the backend on login.
// Both tokens are opaque; the client never inspects their contents.
type Credential struct {
	AccessToken  string
	RefreshToken string
}

// Complete reports whether both tokens are present. A partial credential is
// never used for authorized calls and is treated the same as no credential.
func (c *Credential) Complete() bool {
	return c != nil && c.AccessToken != "" && c.RefreshToken != ""
}
