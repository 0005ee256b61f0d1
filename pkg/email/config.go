package email

// Config holds mail delivery settings. With no Postmark server token the
// service falls back to DevSender writing into DevDir.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	SupportEmail         string `env:"SUPPORT_EMAIL,required"`
	DevDir               string `env:"MAIL_DEV_DIR" envDefault:"./tmp/mail"`
}

// Validate checks the sender identity.
func (c Config) Validate() error {
	if !IsAddress(c.SenderEmail) {
		return invalidConfig("SenderEmail must be a valid email address")
	}
	if !IsAddress(c.SupportEmail) {
		return invalidConfig("SupportEmail must be a valid email address")
	}
	return nil
}
