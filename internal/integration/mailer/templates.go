package mailer

import (
	"fmt"
	"html"
	"net/url"
)

func Welcome(to, fullName string) Message {
	name := fullName
	if name == "" {
		name = to
	}
	return Message{
		To:      to,
		Subject: "Welcome aboard",
		HTML: fmt.Sprintf(
			`<p>Hi %s,</p>`+
				`<p>Your account has been created. You can now sign in and start describing your project.</p>`,
			html.EscapeString(name),
		),
	}
}

func Invite(to, frontendURL, token string) Message {
	link := fmt.Sprintf("%s/register?token=%s", frontendURL, url.QueryEscape(token))
	return Message{
		To:      to,
		Subject: "Complete your registration",
		HTML: fmt.Sprintf(
			`<p>You have been invited to create an account.</p>`+
				`<p><a href="%s">Complete registration</a></p>`+
				`<p>If you did not expect this email you can ignore it.</p>`,
			html.EscapeString(link),
		),
	}
}

func PasswordReset(to, frontendURL, token string) Message {
	link := fmt.Sprintf("%s/reset-password?token=%s", frontendURL, url.QueryEscape(token))
	return Message{
		To:      to,
		Subject: "Reset your password",
		HTML: fmt.Sprintf(
			`<p>We received a request to reset your password.</p>`+
				`<p><a href="%s">Choose a new password</a></p>`+
				`<p>This link expires soon. If you did not request a reset you can ignore this email.</p>`,
			html.EscapeString(link),
		),
	}
}
