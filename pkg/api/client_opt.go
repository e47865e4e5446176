package api

import (
	"net/http"
)

type oauth2Opt struct {
	token string
}

func OAuth2(prefix, token string) *oauth2Opt {
	return &oauth2Opt{token: prefix + " " + token}
}

func (opt *oauth2Opt) Do(client defaultClient, req *http.Request) {
	req.Header.Add("Authorization", opt.token)
}

type auditReasonOpt struct {
	reason string
}

// AuditReason attaches a reason shown in the guild audit log. Empty reasons
// are not sent.
func AuditReason(reason string) *auditReasonOpt {
	return &auditReasonOpt{reason: reason}
}

func (opt *auditReasonOpt) Do(client defaultClient, req *http.Request) {
	if opt.reason != "" {
		req.Header.Set("X-Audit-Log-Reason", PercentEncode(opt.reason))
	}
}
