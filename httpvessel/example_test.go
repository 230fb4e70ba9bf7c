package httpvessel_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"

	"github.com/oakmere/vessel"
	"github.com/oakmere/vessel/httpvessel"
)

type greeter struct{ Name string }

func newGreeter() *greeter { return &greeter{Name: "world"} }

type greetController struct{ Greeter *greeter }

func newGreetController(g *greeter) *greetController { return &greetController{Greeter: g} }

func (c *greetController) Hello(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "hello, %s", c.Greeter.Name)
}

// Example wires a chi router with a per-request vessel scope: Greeter is
// built fresh for every request, GreetController resolves it by name, and
// the scope is disposed once Hello returns.
func Example() {
	root := vessel.New()
	root.Register("greeter", newGreeter)
	root.Register("GreetController", newGreetController, vessel.DependsOn("greeter"))

	r := chi.NewRouter()
	r.Use(httpvessel.ScopeMiddleware(root))
	r.Get("/hello", httpvessel.Handle[*greetController]("GreetController",
		func(c *greetController, w http.ResponseWriter, r *http.Request) { c.Hello(w, r) }))

	req := httptest.NewRequest(http.MethodGet, "/hello", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	fmt.Println(rec.Body.String())
	// Output: hello, world
}
