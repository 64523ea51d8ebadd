package server

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/designhouse/printdesk/internal/access"
)

const idPattern = "{id:[0-9]+}"

// orderView binds one order listing surface to its paths. Empty paths are not
// served.
type orderView struct {
	view   access.View
	name   string
	list   string
	detail string
	create bool
}

var orderViews = []orderView{
	{view: access.ViewOrders, name: "orders", list: "/orders", detail: "/orders/" + idPattern, create: true},
	{view: access.ViewOrdersToday, name: "today", list: "/orders/today", detail: "/orders/today/" + idPattern},
	{view: access.ViewOrdersByStatus, name: "by-status", list: "/orders/status/{status}"},
	{view: access.ViewStatusDetail, name: "status-detail", detail: "/orders/status/{status}/" + idPattern},
	{view: access.ViewOrdersByCategory, name: "by-category", list: "/orders/category/{category_id:[0-9]+}"},
	{view: access.ViewStatusBoard, name: "status-board", list: "/orders/status_list/{status}", detail: "/orders/status_list/{status}/" + idPattern},
	{view: access.ViewReceptionToday, name: "reception-today", list: "/orders/reception_list/today", detail: "/orders/reception_list/today/" + idPattern, create: true},
	{view: access.ViewReceptionBacklog, name: "reception-backlog", list: "/group/orders/reception_list"},
	{view: access.ViewReceptionQueue, name: "reception-queue", list: "/group/orders/status_supper", detail: "/group/orders/status_supper/" + idPattern},
}

// Router builds the HTTP handler. Route names have the form
// "<entity>.<surface>.<action>" and are what the audit log records.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handleNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handleMethodNotAllowed)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet).Name("metrics")
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet).Name("health")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.auditLogMiddleware)
	api.HandleFunc("/auth/token", s.handleIssueToken).Methods(http.MethodPost).Name("auth.token")

	secured := api.NewRoute().Subrouter()
	secured.Use(s.authMiddleware)

	s.orderRoutes(secured)
	s.receptionRoutes(secured)
	s.catalogRoutes(secured)
	s.userRoutes(secured)

	return trimTrailingSlash(r)
}

func (s *Server) orderRoutes(r *mux.Router) {
	r.HandleFunc("/orders/update-status", s.handleUpdateOrderStatus).
		Methods(http.MethodPost, http.MethodPut, http.MethodPatch).Name("order.status.update")
	r.HandleFunc("/orders/"+idPattern+"/history", s.handleOrderHistory).
		Methods(http.MethodGet).Name("order.history.list")

	for _, v := range orderViews {
		prefix := "order." + v.name
		if v.list != "" {
			r.HandleFunc(v.list, s.handleListOrders(v.view)).Methods(http.MethodGet).Name(prefix + ".list")
			if v.create {
				r.HandleFunc(v.list, s.handleCreateOrder(v.view)).Methods(http.MethodPost).Name(prefix + ".create")
			}
		}
		if v.detail != "" {
			r.HandleFunc(v.detail, s.handleGetOrder(v.view)).Methods(http.MethodGet).Name(prefix + ".get")
			r.HandleFunc(v.detail, s.handleUpdateOrder(v.view, false)).Methods(http.MethodPut).Name(prefix + ".update")
			r.HandleFunc(v.detail, s.handleUpdateOrder(v.view, true)).Methods(http.MethodPatch).Name(prefix + ".patch")
			r.HandleFunc(v.detail, s.handleDeleteOrder(v.view)).Methods(http.MethodDelete).Name(prefix + ".delete")
		}
	}
}

func (s *Server) receptionRoutes(r *mux.Router) {
	// order-by-price is the pricing desk's name for the same records.
	for _, base := range []string{"/reception-orders", "/order-by-price"} {
		name := "reception." + strings.TrimPrefix(base, "/")
		r.HandleFunc(base, s.handleListReceptions).Methods(http.MethodGet).Name(name + ".list")
		r.HandleFunc(base, s.handleCreateReception).Methods(http.MethodPost).Name(name + ".create")
		r.HandleFunc(base+"/"+idPattern, s.handleGetReception).Methods(http.MethodGet).Name(name + ".get")
		r.HandleFunc(base+"/"+idPattern, s.handleUpdateReception(false)).Methods(http.MethodPut).Name(name + ".update")
		r.HandleFunc(base+"/"+idPattern, s.handleUpdateReception(true)).Methods(http.MethodPatch).Name(name + ".patch")
		r.HandleFunc(base+"/"+idPattern, s.handleDeleteReception).Methods(http.MethodDelete).Name(name + ".delete")
	}
	r.HandleFunc("/order-by-price/complete/{order_id:[0-9]+}", s.handleCompletePayment).
		Methods(http.MethodPost, http.MethodPut, http.MethodPatch).Name("reception.payment.complete")
}

func (s *Server) catalogRoutes(r *mux.Router) {
	r.HandleFunc("/categories", s.handleListCategories).Methods(http.MethodGet).Name("category.categories.list")
	r.HandleFunc("/categories", s.handleCreateCategory).Methods(http.MethodPost).Name("category.categories.create")
	r.HandleFunc("/categories/"+idPattern, s.handleGetCategory).Methods(http.MethodGet).Name("category.categories.get")
	r.HandleFunc("/categories/"+idPattern, s.handleUpdateCategory).Methods(http.MethodPut, http.MethodPatch).Name("category.categories.update")
	r.HandleFunc("/categories/"+idPattern, s.handleDeleteCategory).Methods(http.MethodDelete).Name("category.categories.delete")
	r.HandleFunc("/categories/"+idPattern+"/attributes", s.handleCategoryAttributes).Methods(http.MethodGet).Name("category.attributes.get")

	r.HandleFunc("/attribute-types", s.handleListAttributeTypes).Methods(http.MethodGet).Name("attribute_type.types.list")
	r.HandleFunc("/attribute-types", s.handleCreateAttributeType).Methods(http.MethodPost).Name("attribute_type.types.create")
	r.HandleFunc("/attribute-types/"+idPattern, s.handleGetAttributeType).Methods(http.MethodGet).Name("attribute_type.types.get")
	r.HandleFunc("/attribute-types/"+idPattern, s.handleUpdateAttributeType).Methods(http.MethodPut, http.MethodPatch).Name("attribute_type.types.update")
	r.HandleFunc("/attribute-types/"+idPattern, s.handleDeleteAttributeType).Methods(http.MethodDelete).Name("attribute_type.types.delete")

	r.HandleFunc("/attribute-values", s.handleListAttributeValues).Methods(http.MethodGet).Name("attribute_value.values.list")
	r.HandleFunc("/attribute-values", s.handleCreateAttributeValue).Methods(http.MethodPost).Name("attribute_value.values.create")
	r.HandleFunc("/attribute-values/"+idPattern, s.handleGetAttributeValue).Methods(http.MethodGet).Name("attribute_value.values.get")
	r.HandleFunc("/attribute-values/"+idPattern, s.handleUpdateAttributeValue).Methods(http.MethodPut, http.MethodPatch).Name("attribute_value.values.update")
	r.HandleFunc("/attribute-values/"+idPattern, s.handleDeleteAttributeValue).Methods(http.MethodDelete).Name("attribute_value.values.delete")
}

func (s *Server) userRoutes(r *mux.Router) {
	r.HandleFunc("/users", s.handleListUsers).Methods(http.MethodGet).Name("user.users.list")
	r.HandleFunc("/users", s.handleCreateUser).Methods(http.MethodPost).Name("user.users.create")
	r.HandleFunc("/users/me", s.handleCurrentUser).Methods(http.MethodGet).Name("user.me.get")
	r.HandleFunc("/users/"+idPattern, s.handleGetUser).Methods(http.MethodGet).Name("user.users.get")
}

// trimTrailingSlash lets "/api/orders/" and "/api/orders" reach the same
// route without a redirect.
func trimTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(r.URL.Path) > 1 && strings.HasSuffix(r.URL.Path, "/") {
			r.URL.Path = strings.TrimRight(r.URL.Path, "/")
			if r.URL.RawPath != "" {
				r.URL.RawPath = strings.TrimRight(r.URL.RawPath, "/")
			}
		}
		next.ServeHTTP(w, r)
	})
}

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	respondError(w, http.StatusNotFound, "Not found.")
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, "Method \""+r.Method+"\" not allowed.")
}
