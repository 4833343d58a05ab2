package types

const redacted = "***REDACTED***"

// Credentials authenticate signed requests. APIKey travels as a header,
// APISecret is only ever used as the HMAC key.
type Credentials struct {
	APIKey    string `json:"-" yaml:"-"`
	APISecret string `json:"-" yaml:"-"`
}

func (c Credentials) IsEmpty() bool {
	return c.APIKey == "" || c.APISecret == ""
}

func (c Credentials) String() string {
	return "Credentials{APIKey:" + redacted + " APISecret:" + redacted + "}"
}

func (c Credentials) GoString() string {
	return c.String()
}
