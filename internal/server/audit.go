package server

import (
	"context"

	"github.com/designhouse/printdesk/internal/access"
)

const auditKey contextKey = "audit"

// auditInfo is filled in by handlers further down the chain so the audit
// middleware can record who made the call.
type auditInfo struct {
	principal *access.Principal
}

func withAuditInfo(ctx context.Context) (context.Context, *auditInfo) {
	info := &auditInfo{}
	return context.WithValue(ctx, auditKey, info), info
}

func setAuditPrincipal(ctx context.Context, p access.Principal) {
	if info, ok := ctx.Value(auditKey).(*auditInfo); ok {
		info.principal = &p
	}
}
