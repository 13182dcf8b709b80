package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/student-portal/pkg/mailer"
)

// PrepareJob normalizes a queued job before rendering: it guarantees a data
// map, copies the recipient into it and fills the language tag.
func PrepareJob(job *mailer.EmailJob, defaultLang string) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
	if strings.TrimSpace(job.Language) == "" {
		job.Language = defaultLang
	}
	job.Data["Language"] = job.Language
	job.Template = strings.ToLower(strings.TrimSpace(job.Template))
}
