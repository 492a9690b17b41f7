package api

const (
	HealthCheckRoute = "/healthz"
	InfoRoute        = "/v1/info"

	DecideEntryRoute = "/v1/entry/decide"

	AuditParent      = "/v1/audit/"
	ListAuditsRoute  = AuditParent + "entries"
	ReplayAuditRoute = AuditParent + "replay"
)
