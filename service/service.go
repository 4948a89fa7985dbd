package service

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/go-logr/logr"

	"github.com/vitalvas/uniresp/errresp"
	"github.com/vitalvas/uniresp/failure"
	"github.com/vitalvas/uniresp/muxhandlers"
	"github.com/vitalvas/uniresp/openapi"
	"github.com/vitalvas/uniresp/response"
)

var (
	// ErrInvalidMethod is returned by Handle for methods an OpenAPI Path
	// Item cannot describe.
	ErrInvalidMethod = errors.New("service: unsupported HTTP method")

	// ErrInvalidPath is returned by Handle for paths not starting with "/".
	// Within a Group the empty path stands for the group prefix.
	ErrInvalidPath = errors.New("service: path must start with \"/\"")
)

// methods are the methods Handle accepts, checked in this order when the
// Allow header of a 405 response is computed.
var methods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodTrace,
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger receiving request failures (at V(1)) and
// response write errors. Defaults to logr.Discard().
func WithLogger(logger logr.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithDocs serves the API document under basePath. By default it is served
// at /openapi.json and /openapi.yaml.
func WithDocs(basePath string, cfg *openapi.HandleConfig) Option {
	return func(s *Service) {
		s.docsBase = basePath
		s.docsCfg = cfg
	}
}

// WithoutDocs disables the document endpoints.
func WithoutDocs() Option {
	return func(s *Service) {
		s.docsDisabled = true
	}
}

// Service serves typed endpoints on a net/http ServeMux and publishes their
// response metadata as an OpenAPI document. Requests matching no endpoint
// are answered with 404, and requests whose path is served under other
// methods with 405 and an Allow header; both use the errresp variants.
//
// Endpoints must be registered before the document is first served: the
// document endpoints build it once.
type Service struct {
	info   openapi.Info
	mux    *http.ServeMux
	logger logr.Logger

	docsBase     string
	docsCfg      *openapi.HandleConfig
	docsDisabled bool
	docsPaths    []string

	mu          sync.Mutex
	operations  []*operation
	middlewares []muxhandlers.Middleware
	chain       http.Handler
}

// New creates a service describing itself with info.
func New(info openapi.Info, opts ...Option) *Service {
	s := &Service{
		info:   info,
		mux:    http.NewServeMux(),
		logger: logr.Discard(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.mux.Handle("/", http.HandlerFunc(s.fallback))

	if !s.docsDisabled {
		s.docsPaths = openapi.Handle(s.mux, s.docsBase, s.Document, s.docsCfg)
	}

	return s
}

// DocumentPaths returns the paths the document is served at.
func (s *Service) DocumentPaths() []string {
	return slices.Clone(s.docsPaths)
}

// Use appends middlewares. The first middleware added is the outermost.
func (s *Service) Use(mws ...muxhandlers.Middleware) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.middlewares = append(s.middlewares, mws...)
	s.chain = nil
}

func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.chain == nil {
		s.chain = muxhandlers.Chain(s.mux, s.middlewares...)
	}
	h := s.chain
	s.mu.Unlock()

	h.ServeHTTP(w, r)
}

// Router is what endpoints are registered on: a Service, or a Group that is
// mounted on one later.
type Router interface {
	addOperation(op *operation) error
}

// Handle registers h for method and path on rt. proto is a prototype of the
// response type: it documents the endpoint and, when it can recover from
// parse errors, builds the response of failed requests. Its declaration is
// validated here, so misdeclared responses never reach a request. Nothing is
// registered when Handle returns an error.
//
// Errors returned by h are answered through proto's parse error recovery
// when available and classified with errresp.Classify otherwise.
func Handle[R response.TypedResponse](rt Router, method, path string, proto R, h func(*http.Request) (R, error), opts ...OperationOption) error {
	if !(&openapi.PathItem{}).SetOperation(method, &openapi.Operation{}) {
		return fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}
	if err := response.Validate(proto); err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if _, err := metaOf(proto); err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	var recoverer response.ParseErrorHandler
	if response.HandlesParseErrors(proto) {
		recoverer = any(proto).(response.ParseErrorHandler)
	}

	op := &operation{method: method, path: path, proto: proto}
	for _, opt := range opts {
		opt(&op.info)
	}

	op.handler = func(s *Service) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resp, err := h(r)
			if err != nil {
				s.serveFailure(w, r, recoverer, err)
				return
			}
			s.write(w, r, resp.Render())
		})
	}

	return rt.addOperation(op)
}

func (s *Service) addOperation(op *operation) error {
	if !strings.HasPrefix(op.path, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidPath, op.path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := register(s.mux, op.pattern(), op.handler(s)); err != nil {
		return err
	}
	s.operations = append(s.operations, op)

	return nil
}

// Mount registers the endpoints of groups. Either every endpoint is
// registered or, when one is misdeclared or conflicts with a registered
// pattern, none is.
func (s *Service) Mount(groups ...*Group) error {
	var ops []*operation
	for _, g := range groups {
		gops, err := g.resolve()
		if err != nil {
			return err
		}
		ops = append(ops, gops...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dry := http.NewServeMux()
	for _, pattern := range s.patterns() {
		dry.Handle(pattern, http.NotFoundHandler())
	}
	for _, op := range ops {
		if err := register(dry, op.pattern(), http.NotFoundHandler()); err != nil {
			return err
		}
	}

	for _, op := range ops {
		s.mux.Handle(op.pattern(), op.handler(s))
		s.operations = append(s.operations, op)
	}

	return nil
}

// patterns returns every pattern registered on the mux. The caller holds mu.
func (s *Service) patterns() []string {
	out := []string{"/"}
	for _, path := range s.docsPaths {
		out = append(out, http.MethodGet+" "+path)
	}
	for _, op := range s.operations {
		out = append(out, op.pattern())
	}
	return out
}

// register converts the panic of a conflicting ServeMux pattern into an
// error.
func register(mux *http.ServeMux, pattern string, h http.Handler) (err error) {
	defer func() {
		if rv := recover(); rv != nil {
			err = fmt.Errorf("service: register %q: %v", pattern, rv)
		}
	}()
	mux.Handle(pattern, h)
	return nil
}

// metaOf returns the descriptors of r, reporting a panicking Meta as an
// error.
func metaOf(r response.TypedResponse) (descs []response.Descriptor, err error) {
	defer func() {
		if rv := recover(); rv != nil {
			if e, ok := rv.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", rv)
		}
	}()
	return r.Meta(), nil
}

func (s *Service) serveFailure(w http.ResponseWriter, r *http.Request, recoverer response.ParseErrorHandler, err error) {
	var wire *response.Wire
	if recoverer != nil {
		wire = recoverer.FromParseError(err).Render()
	} else {
		wire = errresp.Classify(err).Render()
	}

	s.logger.V(1).Info("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", wire.Status,
		"kind", failure.KindOf(err).String(),
		"error", err.Error(),
		"requestID", muxhandlers.RequestIDFromContext(r.Context()),
	)

	s.write(w, r, wire)
}

func (s *Service) write(w http.ResponseWriter, r *http.Request, wire *response.Wire) {
	if err := wire.Write(w); err != nil {
		s.logger.Error(err, "write response",
			"method", r.Method,
			"path", r.URL.Path,
			"requestID", muxhandlers.RequestIDFromContext(r.Context()),
		)
	}
}

// fallback answers requests no endpoint matched: 405 when the path is served
// under other methods, 404 otherwise.
func (s *Service) fallback(w http.ResponseWriter, r *http.Request) {
	allowed := s.allowedMethods(r)

	if len(allowed) == 0 {
		s.write(w, r, errresp.Classify(failure.New(failure.NotFound, "no route for "+r.URL.Path)).Render())
		return
	}

	wire := errresp.Classify(failure.New(failure.MethodNotAllowed, "method "+r.Method+" is not allowed")).Render()
	wire.Header.Set("Allow", strings.Join(allowed, ", "))
	s.write(w, r, wire)
}

// allowedMethods returns, sorted, the methods for which the mux routes r's
// path to a pattern other than the fallback. HEAD is reported wherever GET
// is, as ServeMux serves it.
func (s *Service) allowedMethods(r *http.Request) []string {
	var out []string
	for _, method := range methods {
		alt := r.Clone(r.Context())
		alt.Method = method
		if _, pattern := s.mux.Handler(alt); pattern != "" && pattern != "/" {
			out = append(out, method)
		}
	}
	slices.Sort(out)
	return out
}
