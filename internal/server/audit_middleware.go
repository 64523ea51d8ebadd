package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/designhouse/printdesk/internal/repository"
)

const maxAuditBody = 4 << 10

// Routes whose bodies carry credentials or tokens.
var unrecordedBodies = map[string]bool{
	"auth.token":        true,
	"user.users.create": true,
}

func (s *Server) auditLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := routeName(r)
		entry := repository.AuditLogPayload{
			Timestamp:  s.timeNow().UTC(),
			Method:     r.Method,
			Path:       r.URL.Path,
			Handler:    name,
			Action:     routeAction(name),
			EntityType: routeEntity(name),
			EntityID:   entityID(r),
		}

		recordBodies := !unrecordedBodies[name] &&
			!strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data")

		if recordBodies && r.Body != nil {
			requestBody, _ := io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(requestBody))
			entry.Request = truncate(requestBody)

			if entry.EntityID == "" && name == "order.status.update" {
				var statusRequest struct {
					OrderID int64 `json:"order_id"`
				}
				if err := json.Unmarshal(requestBody, &statusRequest); err == nil && statusRequest.OrderID > 0 {
					entry.EntityID = strconv.FormatInt(statusRequest.OrderID, 10)
				}
			}
		}

		ctx, info := withAuditInfo(r.Context())
		rec := newResponseRecorder(w)

		next.ServeHTTP(rec, r.WithContext(ctx))

		entry.StatusCode = rec.StatusCode()
		if recordBodies {
			entry.Response = truncate(rec.Body())
		}
		if info.principal != nil {
			entry.UserID = info.principal.UserID
			entry.Username = info.principal.Username
		}

		s.AuditManager.LogEntry(r.Context(), entry)
	})
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		return route.GetName()
	}
	return ""
}

// routeEntity and routeAction split "<entity>.<surface>.<action>".
func routeEntity(name string) string {
	entity, _, _ := strings.Cut(name, ".")
	if entity == "" {
		return "unknown"
	}
	return entity
}

func routeAction(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return "unknown"
}

func entityID(r *http.Request) string {
	vars := mux.Vars(r)
	if id := vars["id"]; id != "" {
		return id
	}
	return vars["order_id"]
}

func truncate(b []byte) string {
	if len(b) > maxAuditBody {
		return string(b[:maxAuditBody])
	}
	return string(b)
}
