package mailer

import (
	"bytes"
	"fmt"
	htmpl "html/template"
	texttpl "text/template"
)

var resetText = texttpl.Must(texttpl.New("reset_text").Parse(
	`Hi {{.Name}},

A password reset was requested for your account. Follow the link below to
choose a new password:

{{.ResetURL}}

The link expires in {{.ExpiresIn}}. If you did not request a reset you can
safely ignore this email.

— {{.AppName}}
`))

var resetHTML = htmpl.Must(htmpl.New("reset_html").Parse(
	`<p>Hi {{.Name}},</p>
<p>A password reset was requested for your account.
<a href="{{.ResetURL}}">Reset your password</a>.</p>
<p>The link expires in {{.ExpiresIn}}. If you did not request a reset you can
safely ignore this email.</p>
<p>&mdash; {{.AppName}}</p>
`))

// ResetData holds the fields the password-reset templates render.
type ResetData struct {
	Name      string
	ResetURL  string
	ExpiresIn string
	AppName   string
}

// RenderPasswordReset produces the subject, text, and HTML bodies for a
// password-reset email job.
func RenderPasswordReset(data map[string]any) (subject, text, html string, err error) {
	d := ResetData{
		Name:      str(data, "Name"),
		ResetURL:  str(data, "ResetURL"),
		ExpiresIn: str(data, "ExpiresIn"),
		AppName:   str(data, "AppName"),
	}
	if d.ResetURL == "" {
		return "", "", "", fmt.Errorf("mailer: reset email without ResetURL")
	}
	if d.Name == "" {
		d.Name = "there"
	}
	if d.ExpiresIn == "" {
		d.ExpiresIn = "1 hour"
	}

	var tb, hb bytes.Buffer
	if err := resetText.Execute(&tb, d); err != nil {
		return "", "", "", err
	}
	if err := resetHTML.Execute(&hb, d); err != nil {
		return "", "", "", err
	}
	return "Password Reset Request", tb.String(), hb.String(), nil
}

func str(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}
