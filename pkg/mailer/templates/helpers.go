package templates

import (
	"time"
)

// Site carries the site-wide values every email shows.
type Site struct {
	Name string
	URL  string
}

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithLanguage(lang string) Option { return func(d *EmailData) { d.Language = lang } }

func newBase(site Site, typ, recipient string, userData map[string]string, opts ...Option) EmailData {
	d := EmailData{
		Type:           typ,
		RecipientEmail: recipient,
		SiteName:       site.Name,
		SiteURL:        site.URL,
		FullName:       userData["full_name"],
		UserData:       userData,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// NewRegistrationReceivedData is the payload of the registrant's acknowledgment.
func NewRegistrationReceivedData(site Site, recipient string, userID int64, userData map[string]string, opts ...Option) map[string]any {
	d := newBase(site, RegistrationReceived, recipient, userData, opts...)
	d.UserID = userID
	return ToMap(d)
}

// NewStudentRegisteredData is the payload of the administrator notice.
func NewStudentRegisteredData(site Site, recipient string, userData map[string]string, opts ...Option) map[string]any {
	return ToMap(newBase(site, StudentRegistered, recipient, userData, opts...))
}
