package http_test

import (
	"net/http"
	"net/http/httptest"
)

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	req.RemoteAddr = "192.0.2.1:4711"
	h.ServeHTTP(rec, req)
	return rec
}
