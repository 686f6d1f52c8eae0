package providers

import (
	"net/http"
	"skinwatch/internal/structures"

	json "github.com/goccy/go-json"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	GetRoutes() []structures.Route
	Handler(metrics MetricsProviderInterface) http.Handler
}

type RouterProvider struct {
	routes []structures.Route
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.add(http.MethodGet, url, handler)
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.add(http.MethodPost, url, handler)
}

func (rp *RouterProvider) add(method, url string, handler http.Handler) {
	rp.routes = append(rp.routes, structures.Route{
		Method:  method,
		Url:     url,
		Handler: methodHandler(method, handler),
	})
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

// Handler serves the registered routes with JSON errors for unknown paths
// and wrong methods. Request metrics are labelled by route, never by raw path.
func (rp *RouterProvider) Handler(metrics MetricsProviderInterface) http.Handler {
	mux := http.NewServeMux()
	endpoints := make([]string, 0, len(rp.routes))
	for _, route := range rp.routes {
		mux.Handle(route.Url, exactPath(route.Url, route.Handler))
		endpoints = append(endpoints, route.Url)
	}
	if !rp.has("/") {
		mux.Handle("/", http.HandlerFunc(notFound))
	}
	return MetricsMiddleware(metrics, endpoints, mux)
}

func (rp *RouterProvider) has(url string) bool {
	for _, route := range rp.routes {
		if route.Url == url {
			return true
		}
	}
	return false
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{}
}

type errorResponse struct {
	Error string `json:"error"`
}

// WriteJson writes v with the given status; encoding failures become a 500.
func WriteJson(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func WriteJsonError(w http.ResponseWriter, status int) {
	WriteJson(w, status, errorResponse{Error: http.StatusText(status)})
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	WriteJsonError(w, http.StatusNotFound)
}

// exactPath keeps "/" from acting as a catch-all subtree.
func exactPath(url string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != url {
			notFound(w, r)
			return
		}
		handler.ServeHTTP(w, r)
	})
}

func methodHandler(method string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			WriteJsonError(w, http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
